package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/cache"
	"github.com/dcastillo-dev/barberbook/internal/config"
	"github.com/dcastillo-dev/barberbook/internal/handlers"
	infraRepo "github.com/dcastillo-dev/barberbook/internal/infra/repository"
	"github.com/dcastillo-dev/barberbook/internal/middleware"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/notify"
	"github.com/dcastillo-dev/barberbook/internal/schedule"
	ucAppointment "github.com/dcastillo-dev/barberbook/internal/usecase/appointment"
	ucRating "github.com/dcastillo-dev/barberbook/internal/usecase/rating"
	ucSupport "github.com/dcastillo-dev/barberbook/internal/usecase/support"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger zerolog.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	dispatcher := notify.NewDispatcher(db, logger)
	availCache := cache.NewAvailabilityCache(cfg.RedisAddr, logger)
	scheduleStore := schedule.NewStore(db, availCache)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		db,
		appointmentRepo,
		dispatcher,
		availCache,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		db,
		appointmentRepo,
		dispatcher,
		availCache,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		dispatcher,
		availCache,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		availCache,
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		db,
		appointmentRepo,
		availCache,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		appointmentRepo,
	)

	ratingService := ucRating.NewService(db, appointmentRepo)
	supportService := ucSupport.NewService(db)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		availabilityUC,
		listAppointmentsUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(scheduleStore)
	serviceHandler := handlers.NewServiceHandler(db)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	supportHandler := handlers.NewSupportHandler(supportService)
	notificationHandler := handlers.NewNotificationHandler(db)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/services", serviceHandler.ListActive)
			public.GET("/barbers", serviceHandler.ListBarbers)
			public.GET("/barbers/:barberId/availability", appointmentHandler.Availability)
			public.GET("/barbers/:barberId/ratings", ratingHandler.ForBarber)
			public.GET("/barbers/:barberId/schedule", scheduleHandler.ListWeekly)
			public.GET("/barbers/:barberId/overrides", scheduleHandler.ListOverrides)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)

			secured.GET("/appointments", appointmentHandler.ListMine)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/notifications", notificationHandler.ListMine)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

			secured.POST("/support/tickets", supportHandler.Create)
			secured.GET("/support/tickets", supportHandler.ListMine)

			// clients
			client := secured.Group("/")
			client.Use(middleware.RequireRole(models.RoleClient))
			{
				client.POST("/appointments", appointmentHandler.Create)
				client.POST("/appointments/:id/rating", ratingHandler.Create)
			}

			// barbers manage their own agenda
			barber := secured.Group("/schedule")
			barber.Use(middleware.RequireRole(models.RoleBarber))
			{
				barber.POST("/weekly", scheduleHandler.UpsertWeekly)
				barber.DELETE("/weekly/:id", scheduleHandler.DeactivateWeekly)
				barber.POST("/overrides", scheduleHandler.UpsertOverride)
				barber.DELETE("/overrides/:id", scheduleHandler.DeleteOverride)
			}
			secured.PATCH("/appointments/:id/complete",
				middleware.RequireRole(models.RoleBarber), appointmentHandler.Complete)

			// admins
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/appointments", appointmentHandler.ListAll)

				admin.POST("/services", serviceHandler.Create)
				admin.PUT("/services/:id", serviceHandler.Update)
				admin.DELETE("/services/:id", serviceHandler.Deactivate)

				admin.POST("/barbers/:barberId/schedule/weekly", scheduleHandler.UpsertWeekly)
				admin.DELETE("/barbers/:barberId/schedule/weekly/:id", scheduleHandler.DeactivateWeekly)
				admin.POST("/barbers/:barberId/schedule/overrides", scheduleHandler.UpsertOverride)
				admin.DELETE("/barbers/:barberId/schedule/overrides/:id", scheduleHandler.DeleteOverride)

				admin.GET("/support/tickets", supportHandler.ListAll)
				admin.PATCH("/support/tickets/:id", supportHandler.UpdateStatus)
			}
		}
	}
}
