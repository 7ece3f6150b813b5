package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rmdantas/agenda-api/internal/audit"
	"github.com/rmdantas/agenda-api/internal/config"
	"github.com/rmdantas/agenda-api/internal/handlers"
	"github.com/rmdantas/agenda-api/internal/holiday"
	infraRepo "github.com/rmdantas/agenda-api/internal/infra/repository"
	"github.com/rmdantas/agenda-api/internal/middleware"
	"github.com/rmdantas/agenda-api/internal/timezone"
	ucAppointment "github.com/rmdantas/agenda-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ------------------------------
	// INFRA (SINGLETONS)
	// ------------------------------
	loc := timezone.Location(cfg.Timezone)

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	holidayClient := holiday.NewClient(
		cfg.HolidayAPIURL,
		cfg.HolidayOfflineMode,
		&http.Client{},
		log,
	)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ------------------------------
	// USE CASES
	// ------------------------------
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		loc,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
		loc,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		loc,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		appointmentRepo,
	)

	getAppointmentUC := ucAppointment.NewGetAppointment(
		appointmentRepo,
	)

	availabilityUC := ucAppointment.NewGetAvailableSlots(
		appointmentRepo,
		holidayClient,
		time.Duration(cfg.SlotIntervalMinutes)*time.Minute,
	)

	// ------------------------------
	// HANDLERS
	// ------------------------------
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	providerHandler := handlers.NewProviderHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsUC,
		getAppointmentUC,
		loc,
	)

	slotsHandler := handlers.NewSlotsHandler(availabilityUC, loc)

	// ------------------------------
	// API (JSON)
	// ------------------------------
	api := r.Group("/api")
	{
		// public: booking is open to any caller, slots are read-only
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/slots", slotsHandler.List)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/appointments", appointmentHandler.List)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/audit-logs", auditLogsHandler.List)

			secured.GET("/providers", providerHandler.List)
		}
	}
}
