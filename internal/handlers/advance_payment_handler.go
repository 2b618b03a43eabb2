package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/media"
	"github.com/BruksfildServices01/agenda-sync/internal/middleware"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/notify"
	"github.com/BruksfildServices01/agenda-sync/internal/storage"
	ucAppointment "github.com/BruksfildServices01/agenda-sync/internal/usecase/appointment"
)

const maxProofUploadBytes = 10 << 20

// ======================================================
// HANDLER
// ======================================================

type AdvancePaymentHandler struct {
	db       *gorm.DB
	verifyUC *ucAppointment.VerifyAdvancePayment
	store    storage.ObjectStore
	links    notify.LinkBuilder
}

func NewAdvancePaymentHandler(
	db *gorm.DB,
	verifyUC *ucAppointment.VerifyAdvancePayment,
	store storage.ObjectStore,
	links notify.LinkBuilder,
) *AdvancePaymentHandler {
	return &AdvancePaymentHandler{
		db:       db,
		verifyUC: verifyUC,
		store:    store,
		links:    links,
	}
}

type VerifyAdvancePaymentRequest struct {
	Outcome    string `json:"outcome" binding:"required"` // verified | rejected
	PaymentRef string `json:"payment_ref"`
}

// ======================================================
// VERIFY / REJECT
// ======================================================

func (h *AdvancePaymentHandler) Verify(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req VerifyAdvancePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	outcome := domain.AdvancePaymentStatus(req.Outcome)
	if outcome != domain.AdvanceVerified && outcome != domain.AdvanceRejected {
		httperr.BadRequest(c, "invalid_outcome", "Resultado inválido.")
		return
	}

	ap, err := h.verifyUC.Execute(
		c.Request.Context(),
		barbershopID,
		barberID,
		uint(id),
		outcome,
		req.PaymentRef,
	)
	if err != nil {
		httperr.WriteBusiness(c, err, "Erro ao verificar pagamento antecipado.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// PROOF UPLOAD
// ======================================================

// UploadProof stores the payment screenshot attached to an appointment
// with a pending advance payment. The image is re-encoded server side so
// the bucket only ever holds bounded webp files.
func (h *AdvancePaymentHandler) UploadProof(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if ap.AdvancePaymentStatus == nil {
		httperr.BadRequest(c, "no_advance_payment", "Agendamento sem pagamento antecipado.")
		return
	}

	file, _, err := c.Request.FormFile("proof")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxProofUploadBytes))
	if err != nil {
		httperr.Internal(c, "upload_read_failed", "Erro ao ler arquivo.")
		return
	}

	encoded, err := media.ReencodeProof(raw)
	if err != nil {
		httperr.WriteBusiness(c, err, "Imagem inválida.")
		return
	}

	url, err := h.store.PutProof(c.Request.Context(), barbershopID, ap.ID, encoded)
	if err != nil {
		httperr.Internal(c, "proof_store_failed", "Erro ao armazenar comprovante.")
		return
	}

	ap.AdvanceProofURL = &url
	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao salvar agendamento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proof_url": url,
	})
}

// ======================================================
// PROOF REQUEST LINK
// ======================================================

// ProofRequestLink returns the deep link staff tap to ask the client for
// the payment proof over the promotion's configured channel.
func (h *AdvancePaymentHandler) ProofRequestLink(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Client").
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if ap.AdvancePaymentStatus == nil || ap.AdvanceFinalCents == nil {
		httperr.BadRequest(c, "no_advance_payment", "Agendamento sem pagamento antecipado.")
		return
	}

	if ap.Client == nil || ap.Client.Phone == "" {
		httperr.BadRequest(c, "client_without_phone", "Cliente sem telefone cadastrado.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.Internal(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	channel := "whatsapp"
	if ap.AdvanceProofChannel != nil {
		channel = *ap.AdvanceProofChannel
	}

	link := h.links.ProofRequestLink(channel, ap.Client.Phone, *ap.AdvanceFinalCents, shop.Name)

	c.JSON(http.StatusOK, gin.H{
		"channel": channel,
		"link":    link,
	})
}
