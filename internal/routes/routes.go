package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	"github.com/BruksfildServices01/nail-salon/internal/config"
	"github.com/BruksfildServices01/nail-salon/internal/handlers"
	infraRepo "github.com/BruksfildServices01/nail-salon/internal/infra/repository"
	"github.com/BruksfildServices01/nail-salon/internal/metrics"
	"github.com/BruksfildServices01/nail-salon/internal/middleware"
	"github.com/BruksfildServices01/nail-salon/internal/notify"
	"github.com/BruksfildServices01/nail-salon/internal/payments"
	"github.com/BruksfildServices01/nail-salon/internal/timezone"
	"github.com/BruksfildServices01/nail-salon/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/nail-salon/internal/usecase/booking"
	"github.com/BruksfildServices01/nail-salon/internal/usecase/gallery"
	ucPayment "github.com/BruksfildServices01/nail-salon/internal/usecase/payment"
	"github.com/BruksfildServices01/nail-salon/internal/usecase/schedule"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      zerolog.Logger
	Clock    timezone.Clock
	Audit    *audit.Dispatcher
	Metrics  *metrics.Metrics
	Schedule *schedule.Store
	Bookings *infraRepo.BookingGormRepository
	Settings *infraRepo.SettingsGormRepository
	Expire   *ucBooking.ExpireStalePending

	// optional integrations, nil when not configured
	Objects     gallery.ObjectStore
	MercadoPago *payments.MercadoPago
	Telegram    *notify.Telegram
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		if cfg.MetricsEnabled {
			r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
		}
	}

	// ======================================================
	// USE CASES
	// ======================================================
	notifier := notify.NewNotifier(notify.NewWhatsApp(d.Settings), d.Telegram, d.Log)
	slots := availability.NewGetAvailableSlots(d.Schedule, d.Bookings, d.Clock)

	createBookingUC := ucBooking.NewCreateBooking(
		d.Bookings, slots, d.Settings, d.Audit, d.Metrics, d.Clock, cfg.PaymentWindow,
	)
	manualBookingUC := ucBooking.NewCreateManualBooking(
		d.Bookings, slots, notifier, d.Audit, d.Metrics, d.Clock,
	)
	confirmUC := ucBooking.NewConfirmPayment(d.Bookings, notifier, d.Audit, d.Metrics, d.Clock)
	cancelUC := ucBooking.NewCancelBooking(d.Bookings, d.Audit, d.Metrics, d.Clock)
	setPriceUC := ucBooking.NewSetPrice(d.Bookings, d.Audit)
	getBookingUC := ucBooking.NewGetBooking(d.Bookings)
	listBookingsUC := ucBooking.NewListBookings(d.Bookings, d.Expire)
	deleteBookingUC := ucBooking.NewDeleteBooking(d.Bookings, d.Audit)

	checkoutUC := ucPayment.NewStartCheckout(d.Bookings, d.Settings, d.MercadoPago, d.Log)
	athUC := ucPayment.NewHandleATHCallback(d.Bookings, confirmUC)
	mpUC := ucPayment.NewHandleMercadoPagoWebhook(d.Bookings, confirmUC, d.MercadoPago, d.Log)

	galleryService := gallery.NewService(
		infraRepo.NewGalleryGormRepository(d.DB),
		d.Objects,
		gallery.Options{MaxWidth: cfg.GalleryMaxWidth, Quality: cfg.WebPQuality},
		d.Audit,
		d.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg.JWTSecret)
	publicHandler := handlers.NewPublicHandler(slots, createBookingUC, getBookingUC, checkoutUC, d.Settings)
	bookingHandler := handlers.NewBookingHandler(
		listBookingsUC,
		getBookingUC,
		manualBookingUC,
		confirmUC,
		cancelUC,
		setPriceUC,
		deleteBookingUC,
		d.Expire,
		d.Clock,
	)
	scheduleHandler := handlers.NewScheduleHandler(d.Schedule)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	jobHandler := handlers.NewJobApplicationHandler(d.DB, d.Audit)
	settingsHandler := handlers.NewSettingsHandler(d.Settings, d.Audit)
	webhookHandler := handlers.NewPaymentWebhookHandler(athUC, mpUC, cfg.ATHWebhookSecret, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	limiter := middleware.NewIPRateLimiter(cfg.PublicRateLimit, cfg.PublicRateBurst)
	limited := limiter.Middleware()

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/availability", publicHandler.Availability)
			public.GET("/availability/month", publicHandler.AvailabilityMonth)

			public.POST("/bookings", limited, publicHandler.CreateBooking)
			public.GET("/bookings/:id", publicHandler.GetBooking)
			public.POST("/bookings/:id/checkout", limited, publicHandler.Checkout)

			public.GET("/services", serviceHandler.PublicList)
			public.GET("/gallery", galleryHandler.PublicList)
			public.POST("/job-applications", limited, jobHandler.Submit)
		}

		// ------------------------------
		// PAYMENT CALLBACKS
		// ------------------------------
		pay := api.Group("/payments")
		{
			pay.POST("/ath/callback", webhookHandler.ATHCallback)
			pay.POST("/mercadopago/webhook", webhookHandler.MercadoPagoWebhook)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", limited, authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			admin.GET("/me", authHandler.Me)

			admin.GET("/bookings", bookingHandler.List)
			admin.POST("/bookings", bookingHandler.Create)
			admin.GET("/bookings/export.xlsx", bookingHandler.Export)
			admin.POST("/bookings/expire", bookingHandler.Expire)
			admin.GET("/bookings/:id", bookingHandler.Get)
			admin.PATCH("/bookings/:id/confirm", bookingHandler.Confirm)
			admin.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			admin.PATCH("/bookings/:id/price", bookingHandler.SetPrice)
			admin.DELETE("/bookings/:id", bookingHandler.Delete)

			admin.GET("/schedule", scheduleHandler.Month)
			admin.POST("/schedule/generate", scheduleHandler.Generate)
			admin.POST("/schedule/days", scheduleHandler.UpdateDays)
			admin.POST("/schedule/slots", scheduleHandler.UpdateSlots)
			admin.POST("/schedule/activate", scheduleHandler.Activate)
			admin.GET("/schedule/:date", scheduleHandler.Day)
			admin.PATCH("/schedule/:date", scheduleHandler.UpdateDay)
			admin.PATCH("/schedule/:date/slots/:time", scheduleHandler.UpdateSlot)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.GET("/gallery", galleryHandler.List)
			admin.POST("/gallery", galleryHandler.Upload)
			admin.PATCH("/gallery/:id", galleryHandler.Update)
			admin.DELETE("/gallery/:id", galleryHandler.Delete)

			admin.GET("/job-applications", jobHandler.List)
			admin.PATCH("/job-applications/:id/status", jobHandler.UpdateStatus)
			admin.DELETE("/job-applications/:id", jobHandler.Delete)

			admin.GET("/settings/whatsapp", settingsHandler.GetWhatsApp)
			admin.PUT("/settings/whatsapp", settingsHandler.UpdateWhatsApp)
			admin.GET("/settings/payment", settingsHandler.GetPayment)
			admin.PUT("/settings/payment", settingsHandler.UpdatePayment)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "time": d.Clock().Format(time.RFC3339)})
	})
}
