package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/middleware"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/timezone"
)

type BarbershopHandler struct {
	db *gorm.DB
}

func NewBarbershopHandler(db *gorm.DB) *BarbershopHandler {
	return &BarbershopHandler{db: db}
}

type UpdateBarbershopConfigRequest struct {
	MinAdvanceMinutes         *int      `json:"min_advance_minutes"`
	SlotGranularityMin        *int      `json:"slot_granularity_min"`
	PaymentMethods            *[]string `json:"payment_methods"`
	DurationPredictionEnabled *bool     `json:"duration_prediction_enabled"`
	Timezone                  *string   `json:"timezone"`
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	barbershopIDVal, _ := c.Get(middleware.ContextBarbershopID)
	barbershopID := barbershopIDVal.(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	barbershopIDVal, _ := c.Get(middleware.ContextBarbershopID)
	barbershopID := barbershopIDVal.(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	var req UpdateBarbershopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.SlotGranularityMin != nil {
		if *req.SlotGranularityMin < 5 || *req.SlotGranularityMin > 120 {
			httperr.BadRequest(c, "invalid_granularity", "Granularidade deve ficar entre 5 e 120 minutos.")
			return
		}
		shop.SlotGranularityMin = *req.SlotGranularityMin
	}

	if req.PaymentMethods != nil {
		if len(*req.PaymentMethods) == 0 {
			httperr.BadRequest(c, "empty_payment_methods", "Informe ao menos um método de pagamento.")
			return
		}
		for _, m := range *req.PaymentMethods {
			if !domain.PaymentMethod(m).Valid() {
				httperr.BadRequest(c, "invalid_payment_method", "Método de pagamento inválido.")
				return
			}
		}
		shop.PaymentMethods = strings.Join(*req.PaymentMethods, ",")
	}

	if req.DurationPredictionEnabled != nil {
		shop.DurationPredictionEnabled = *req.DurationPredictionEnabled
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	c.JSON(http.StatusOK, shop)
}
