package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shampooches/salon-scheduler/internal/audit"
	"github.com/shampooches/salon-scheduler/internal/config"
	"github.com/shampooches/salon-scheduler/internal/handlers"
	"github.com/shampooches/salon-scheduler/internal/infra/cache"
	infraRepo "github.com/shampooches/salon-scheduler/internal/infra/repository"
	"github.com/shampooches/salon-scheduler/internal/infra/storage"
	"github.com/shampooches/salon-scheduler/internal/middleware"
	"github.com/shampooches/salon-scheduler/internal/notify"
	"github.com/shampooches/salon-scheduler/internal/timezone"
	ucBooking "github.com/shampooches/salon-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	loc := timezone.Location(cfg.Timezone)

	bookingRepo := infraRepo.NewBookingGormRepository(db)
	availCache := cache.NewAvailabilityCache(cfg)
	imageStore := storage.NewImageStore(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	mailer := notify.NewMailer(cfg)
	notifyDispatcher := notify.NewDispatcher(mailer)

	// ======================================================
	// USE CASES
	// ======================================================
	quoteUC := ucBooking.NewQuotePrice(bookingRepo)

	availabilityUC := ucBooking.NewGetAvailability(
		bookingRepo,
		availCache,
		loc,
	)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		notifyDispatcher,
		availCache,
		loc,
	)

	updateStatusUC := ucBooking.NewUpdateStatus(
		bookingRepo,
		auditDispatcher,
		notifyDispatcher,
		availCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	publicHandler := handlers.NewPublicHandler(db, quoteUC, availabilityUC, createBookingUC, loc)
	dogHandler := handlers.NewDogHandler(db, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(db, createBookingUC, updateStatusUC, quoteUC)
	messageHandler := handlers.NewMessageHandler(db)

	timeSlotHandler := handlers.NewTimeSlotHandler(db, auditDispatcher, availCache, loc)
	breedHandler := handlers.NewBreedHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	groomerHandler := handlers.NewGroomerHandler(db, auditDispatcher, imageStore)
	moderationHandler := handlers.NewModerationHandler(db, auditDispatcher)
	dashboardHandler := handlers.NewDashboardHandler(db, loc)
	siteConfigHandler := handlers.NewSiteConfigHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/groomers", publicHandler.ListGroomers)
			publicAPI.GET("/breeds", publicHandler.ListBreeds)
			publicAPI.POST("/quote", publicHandler.Quote)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/bookings", publicHandler.CreateBooking)
			publicAPI.GET("/bookings/:reference", publicHandler.LookupBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		me := api.Group("/me")
		me.Use(middleware.AuthMiddleware(cfg))
		{
			me.GET("", authHandler.Me)

			me.GET("/dogs", dogHandler.List)
			me.POST("/dogs", dogHandler.Create)
			me.PATCH("/dogs/:id", dogHandler.Update)
			me.POST("/dogs/:id/deletion-requests", dogHandler.RequestDeletion)
			me.GET("/deletion-requests", dogHandler.ListDeletionRequests)
			me.GET("/dogs/:id/quote", appointmentHandler.QuoteForDog)

			me.GET("/appointments", appointmentHandler.ListMine)
			me.POST("/appointments", appointmentHandler.Create)
			me.PATCH("/appointments/:id/cancel", appointmentHandler.CancelMine)

			me.GET("/messages", messageHandler.MyThread)
			me.POST("/messages", messageHandler.SendAsCustomer)
		}

		// ------------------------------
		// ADMIN / STAFF
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireStaff())
		{
			admin.GET("/appointments", appointmentHandler.ListAll)
			admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

			admin.GET("/time-slots", timeSlotHandler.ListDay)
			admin.PUT("/time-slots", timeSlotHandler.ReplaceDay)

			admin.GET("/breeds", breedHandler.List)
			admin.POST("/breeds", breedHandler.Create)
			admin.PATCH("/breeds/:id", breedHandler.Update)
			admin.GET("/breeds/:id/services", breedHandler.ListMappings)
			admin.PUT("/breeds/:id/services", breedHandler.UpsertMapping)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Deactivate)

			admin.GET("/groomers", groomerHandler.List)
			admin.POST("/groomers", groomerHandler.Create)
			admin.PATCH("/groomers/:id", groomerHandler.Update)
			admin.POST("/groomers/:id/image", groomerHandler.UploadImage)

			admin.GET("/deletion-requests", moderationHandler.ListDeletionRequests)
			admin.PATCH("/deletion-requests/:id", moderationHandler.ResolveDeletionRequest)

			admin.GET("/messages/threads", messageHandler.ListThreads)
			admin.GET("/messages/threads/:id", messageHandler.ThreadMessages)
			admin.POST("/messages/threads/:id", messageHandler.SendAsStaff)

			admin.GET("/dashboard", dashboardHandler.Stats)
			admin.GET("/audit-logs", auditLogsHandler.List)

			// config changes are admin-only
			admin.GET("/config", siteConfigHandler.Get)
			admin.PUT("/config", middleware.RequireAdmin(), siteConfigHandler.Update)
		}
	}
}
