package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
)

// Dependencies are the process-wide singletons the router wires into
// handlers. DB backs the account and audit endpoints; Repo and Tx back
// the booking engine.
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Repo    domain.Repository
	Tx      domain.Transactor
	Cache   cache.SlotCache
	Audit   *audit.Dispatcher
	Metrics *metrics.Metrics
	Log     *zap.Logger
	Loc     *time.Location
}

func NewRouter(d Dependencies) *gin.Engine {
	r := gin.New()

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Metrics(d.Metrics),
		middleware.CORSMiddleware(d.Config.CORSAllowOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {

	// ======================================================
	// USE CASES
	// ======================================================
	appointmentDeps := ucAppointment.Deps{
		Repo:    d.Repo,
		Tx:      d.Tx,
		Audit:   d.Audit,
		Cache:   d.Cache,
		Metrics: d.Metrics,
		Log:     d.Log,
		Loc:     d.Loc,
	}

	setWindowsUC := ucAvailability.NewSetWindows(d.Tx, d.Cache, d.Audit, d.Log)
	listWindowsUC := ucAvailability.NewListWindows(d.Repo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Audit, d.Log)
	meHandler := handlers.NewMeHandler(d.DB, d.Log)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentDeps)
	availabilityHandler := handlers.NewAvailabilityHandler(setWindowsUC, listWindowsUC, d.Repo, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Repo, d.Log)

	api := r.Group("/api/v1")

	// ======================================================
	// PUBLIC
	// ======================================================
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/appointments/available-slots", appointmentHandler.AvailableSlots)
	api.GET("/barbers/:id/availability", availabilityHandler.Get)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	private := api.Group("")
	private.Use(middleware.AuthMiddleware(d.Config.JWTSecret))

	private.GET("/me", meHandler.GetMe)

	appointments := private.Group("/appointments")
	{
		appointments.GET("", appointmentHandler.List)
		appointments.POST("", appointmentHandler.Create)
		appointments.GET("/:id", appointmentHandler.Get)
		appointments.PUT("/:id", appointmentHandler.Update)
		appointments.PUT("/:id/status", appointmentHandler.UpdateStatus)
		appointments.DELETE("/:id", appointmentHandler.Cancel)
	}

	private.PUT("/barbers/:id/availability", availabilityHandler.Update)
	private.GET("/audit-logs", auditLogsHandler.List)
}
