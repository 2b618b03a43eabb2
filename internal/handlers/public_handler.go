package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda-sync/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreatePublicBooking
	claims         *ucAppointment.ClaimSigner
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreatePublicBooking,
	claims *ucAppointment.ClaimSigner,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		claims:         claims,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
	PromotionID uint   `json:"promotion_id"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"services":   services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	barber, err := h.defaultBarber(shop.ID)
	if err != nil {
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	availability, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarbershopID: shop.ID,
			BarberID:     barber.ID,
			ServiceID:    uint(serviceID),
			Date:         date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
			return
		}
		httperr.WriteBusiness(c, err, "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         dateStr,
		"availability": availability,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber, err := h.defaultBarber(shop.ID)
	if err != nil {
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	out, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreatePublicBookingInput{
			BarbershopSlug: slug,
			BarberID:       barber.ID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ClientEmail:    req.ClientEmail,
			ServiceID:      req.ServiceID,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
			PromotionID:    req.PromotionID,
		},
	)
	if err != nil {
		if httperr.IsKind(err, httperr.KindConflictOnMutation) {
			httperr.Conflict(c, "time_conflict", "Conflito de horário.")
			return
		}
		httperr.WriteBusiness(c, err, "Erro ao criar agendamento.")
		return
	}

	c.JSON(http.StatusCreated, out)
}

////////////////////////////////////////////////////////
// CLAIM (LOOKUP / CANCEL WITHOUT ACCOUNT)
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBookingByClaim(c *gin.Context) {
	ap, ok := h.appointmentFromClaim(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": ap,
	})
}

func (h *PublicHandler) CancelBookingByClaim(c *gin.Context) {
	ap, ok := h.appointmentFromClaim(c)
	if !ok {
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, ap.BarbershopID).Error; err != nil {
		httperr.Internal(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		httperr.BadRequest(c, "invalid_state", "Agendamento não pode ser cancelado.")
		return
	}

	if err := h.db.Save(ap).Error; err != nil {
		httperr.Internal(c, "failed_to_cancel", "Erro ao cancelar agendamento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": ap,
	})
}

func (h *PublicHandler) appointmentFromClaim(c *gin.Context) (*models.Appointment, bool) {
	token := c.Query("claim")
	if token == "" {
		token = c.GetHeader("X-Booking-Claim")
	}
	if token == "" {
		httperr.BadRequest(c, "missing_claim", "Token de acompanhamento obrigatório.")
		return nil, false
	}

	id, err := h.claims.Parse(token)
	if err != nil {
		httperr.Unauthorized(c, "invalid_claim_token", "Token inválido ou expirado.")
		return nil, false
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Barbershop").
		First(&ap, id).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return nil, false
	}

	return &ap, true
}

// defaultBarber mirrors the storefront assumption of one bookable owner
// per shop.
func (h *PublicHandler) defaultBarber(barbershopID uint) (*models.User, error) {
	var barber models.User
	err := h.db.
		Where("barbershop_id = ? AND role = ?", barbershopID, "owner").
		First(&barber).Error
	if err != nil {
		return nil, err
	}
	return &barber, nil
}
