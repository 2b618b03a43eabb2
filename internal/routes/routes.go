package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-sync/internal/audit"
	"github.com/BruksfildServices01/agenda-sync/internal/config"
	"github.com/BruksfildServices01/agenda-sync/internal/dispatch"
	"github.com/BruksfildServices01/agenda-sync/internal/handlers"
	infraRepo "github.com/BruksfildServices01/agenda-sync/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-sync/internal/logging"
	"github.com/BruksfildServices01/agenda-sync/internal/middleware"
	"github.com/BruksfildServices01/agenda-sync/internal/notify"
	"github.com/BruksfildServices01/agenda-sync/internal/payments"
	"github.com/BruksfildServices01/agenda-sync/internal/realtime"
	"github.com/BruksfildServices01/agenda-sync/internal/schedule"
	"github.com/BruksfildServices01/agenda-sync/internal/storage"
	ucAppointment "github.com/BruksfildServices01/agenda-sync/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger *logging.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	changeSource := realtime.NewChangeSource(rdb, cfg.PollIntervalSecs, logger)
	publisher := realtime.NewPublisher(rdb)
	hub := realtime.NewHub(changeSource, logger)

	claimSigner := ucAppointment.NewClaimSigner(cfg.JWTSecret)

	var verifier payments.Verifier
	if cfg.MercadoPagoToken != "" {
		if v, err := payments.NewMercadoPagoVerifier(cfg.MercadoPagoToken); err == nil {
			verifier = v
		} else {
			logger.Warn("payment verifier disabled", "err", err)
		}
	}

	proofStore := storage.NewS3Store(cfg)
	linkBuilder := notify.NewDeepLinkBuilder()

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	checkInUC := ucAppointment.NewCheckInAppointment(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	noShowUC := ucAppointment.NewNoShowAppointment(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	createWalkInUC := ucAppointment.NewCreateWalkIn(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	createPublicUC := ucAppointment.NewCreatePublicBooking(
		appointmentRepo,
		auditDispatcher,
		publisher,
		claimSigner,
	)

	verifyAdvanceUC := ucAppointment.NewVerifyAdvancePayment(
		appointmentRepo,
		auditDispatcher,
		publisher,
		verifier,
	)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	listDayUC := ucAppointment.NewListDaySchedule(appointmentRepo)
	listMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	// ======================================================
	// DISPATCH / BOARDS
	// ======================================================
	actionStore := dispatch.NewUsecaseStore(checkInUC, completeUC, noShowUC)
	actionDispatchers := dispatch.NewRegistry(actionStore, logger, nil)

	boards := schedule.NewManager(appointmentRepo, rescheduleUC, changeSource, logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	promotionHandler := handlers.NewPromotionHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createWalkInUC,
		cancelUC,
		listDayUC,
		listMonthUC,
		boards,
	)

	actionHandler := handlers.NewActionHandler(actionDispatchers)

	advancePaymentHandler := handlers.NewAdvancePaymentHandler(
		db,
		verifyAdvanceUC,
		proofStore,
		linkBuilder,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityUC,
		createPublicUC,
		claimSigner,
	)

	realtimeHandler := handlers.NewRealtimeHandler(hub)

	// ======================================================
	// METRICS
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateBooking)

			publicAPI.GET("/bookings", publicHandler.GetBookingByClaim)
			publicAPI.POST("/bookings/cancel", publicHandler.CancelBookingByClaim)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/promotions", promotionHandler.List)
			secured.POST("/me/promotions", promotionHandler.Create)
			secured.PATCH("/me/promotions/:id", promotionHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments/walk-in", appointmentHandler.CreateWalkIn)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			// Lifecycle transitions go through the action dispatcher.
			secured.GET("/me/actions/status", actionHandler.Status)
			secured.PATCH("/me/appointments/:id/check-in", actionHandler.CheckIn)
			secured.PATCH("/me/appointments/:id/complete", actionHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", actionHandler.NoShow)

			// Advance payments.
			secured.PATCH("/me/appointments/:id/advance-payment", advancePaymentHandler.Verify)
			secured.POST("/me/appointments/:id/advance-payment/proof", advancePaymentHandler.UploadProof)
			secured.GET("/me/appointments/:id/advance-payment/link", advancePaymentHandler.ProofRequestLink)

			// Realtime invalidation streams.
			secured.GET("/me/schedule/watch", realtimeHandler.WatchMySchedule)
			secured.GET("/me/shop/watch", realtimeHandler.WatchShop)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
