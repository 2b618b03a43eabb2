package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-sync/internal/middleware"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

type PromotionHandler struct {
	db *gorm.DB
}

func NewPromotionHandler(db *gorm.DB) *PromotionHandler {
	return &PromotionHandler{db: db}
}

// --------- Requests ---------

type CreatePromotionRequest struct {
	ServiceID    *uint  `json:"service_id"`
	Weekday      int    `json:"weekday" binding:"min=0,max=6"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	DiscountPct  int    `json:"discount_pct" binding:"required,min=1,max=90"`
	ProofChannel string `json:"proof_channel"`
}

type UpdatePromotionRequest struct {
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	DiscountPct  *int    `json:"discount_pct,omitempty"`
	ProofChannel *string `json:"proof_channel,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *PromotionHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var promos []models.Promotion
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("weekday ASC, start_time ASC").
		Find(&promos).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_promotions"})
		return
	}

	c.JSON(http.StatusOK, promos)
}

func (h *PromotionHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	channel := req.ProofChannel
	if channel == "" {
		channel = "whatsapp"
	}
	if channel != "whatsapp" && channel != "sms" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_proof_channel"})
		return
	}

	if req.ServiceID != nil {
		var count int64
		h.db.Model(&models.Service{}).
			Where("id = ? AND barbershop_id = ?", *req.ServiceID, barbershopID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "service_not_found"})
			return
		}
	}

	promo := models.Promotion{
		BarbershopID: barbershopID,
		ServiceID:    req.ServiceID,
		Weekday:      req.Weekday,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		DiscountPct:  req.DiscountPct,
		Active:       true,
		ProofChannel: channel,
	}

	if err := h.db.Create(&promo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_promotion"})
		return
	}

	c.JSON(http.StatusCreated, promo)
}

func (h *PromotionHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id := c.Param("id")

	var promo models.Promotion
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&promo).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "promotion_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_promotion"})
		return
	}

	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.StartTime != nil {
		promo.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		promo.EndTime = *req.EndTime
	}
	if req.DiscountPct != nil {
		promo.DiscountPct = *req.DiscountPct
	}
	if req.ProofChannel != nil {
		promo.ProofChannel = *req.ProofChannel
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}

	if err := h.db.Save(&promo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_promotion"})
		return
	}

	c.JSON(http.StatusOK, promo)
}
