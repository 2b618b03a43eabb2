package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/middleware"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/schedule"
	ucAppointment "github.com/BruksfildServices01/agenda-sync/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createWalkInUC *ucAppointment.CreateWalkIn
	cancelUC       *ucAppointment.CancelAppointment
	listDayUC      *ucAppointment.ListDaySchedule
	listMonthUC    *ucAppointment.ListAppointmentsByMonth

	boards *schedule.Manager
}

func NewAppointmentHandler(
	db *gorm.DB,
	createWalkInUC *ucAppointment.CreateWalkIn,
	cancelUC *ucAppointment.CancelAppointment,
	listDayUC *ucAppointment.ListDaySchedule,
	listMonthUC *ucAppointment.ListAppointmentsByMonth,
	boards *schedule.Manager,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		createWalkInUC: createWalkInUC,
		cancelUC:       cancelUC,
		listDayUC:      listDayUC,
		listMonthUC:    listMonthUC,
		boards:         boards,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWalkInRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Notes       string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm
}

// ======================================================
// WALK-IN
// ======================================================

func (h *AppointmentHandler) CreateWalkIn(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateWalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createWalkInUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateWalkInInput{
			BarbershopID: barbershopID,
			BarberID:     barberID,
			ClientName:   req.ClientName,
			ClientPhone:  req.ClientPhone,
			ServiceID:    req.ServiceID,
			Notes:        req.Notes,
		},
	)
	if err != nil {
		httperr.WriteBusiness(c, err, "Erro ao criar encaixe.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST (DAY VIEW WITH DELAYS)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.Internal(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	date, err := parseDateInShop(&shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	day, err := h.listDayUC.Execute(c.Request.Context(), barberID, barbershopID, date)
	if err != nil {
		httperr.WriteBusiness(c, err, "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, day)
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	appointments, err := h.listMonthUC.Execute(
		c.Request.Context(),
		barberID,
		barbershopID,
		year,
		month,
	)
	if err != nil {
		httperr.WriteBusiness(c, err, "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": appointments,
	})
}

// ======================================================
// RESCHEDULE (OPTIMISTIC, VIA BOARD)
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.Internal(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	board := h.boards.Board(barbershopID, barberID, shop.Timezone)

	ap, err := board.Reschedule(c.Request.Context(), uint(id), req.Date, req.Time)
	if err != nil {
		if httperr.IsKind(err, httperr.KindConflictOnMutation) {
			httperr.Conflict(c, "time_conflict", "Conflito de horário.")
			return
		}
		httperr.WriteBusiness(c, err, "Erro ao remarcar agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), barbershopID, barberID, uint(id))
	if err != nil {
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Agendamento não pode ser cancelado.")
			return
		}
		httperr.WriteBusiness(c, err, "Erro ao cancelar agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}
