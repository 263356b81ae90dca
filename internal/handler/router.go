package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tourbook/internal/handler/api"
	"tourbook/internal/handler/middleware"
	"tourbook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Bookings     *api.BookingHandler
	Bulk         *api.BulkHandler
	Availability *api.AvailabilityHandler
	Stats        *api.StatsHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	write := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(middleware.RoleOperator)}
	{
		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Bookings.List},
			{Method: http.MethodPost, Path: "", Handler: h.Bookings.Create, Mw: write},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Bookings.Update, Mw: write},
			{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Bookings.Confirm, Mw: write},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Bookings.Cancel, Mw: write},
			{Method: http.MethodPost, Path: "/:id/no-show", Handler: h.Bookings.MarkNoShow, Mw: write},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Bookings.Complete, Mw: write},
			{Method: http.MethodPost, Path: "/:id/reschedule", Handler: h.Bookings.Reschedule, Mw: write},
			{Method: http.MethodPut, Path: "/:id/payment-status", Handler: h.Bookings.UpdatePaymentStatus, Mw: write},
		})

		bulk := bookings.Group("/bulk")
		addRoutes(bulk, []route{
			{Method: http.MethodPost, Path: "/confirm", Handler: h.Bulk.Confirm, Mw: write},
			{Method: http.MethodPost, Path: "/cancel", Handler: h.Bulk.Cancel, Mw: write},
			{Method: http.MethodPost, Path: "/payment-status", Handler: h.Bulk.UpdatePaymentStatus, Mw: write},
			{Method: http.MethodPost, Path: "/reschedule", Handler: h.Bulk.Reschedule, Mw: write},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability/slot", Handler: h.Availability.CheckSlot},
			{Method: http.MethodGet, Path: "/availability/heatmap", Handler: h.Availability.Heatmap},
			{Method: http.MethodGet, Path: "/tours/:id/availability", Handler: h.Availability.Month},
			{Method: http.MethodGet, Path: "/stats/needs-action", Handler: h.Stats.NeedsAction},
			{Method: http.MethodGet, Path: "/stats/summary", Handler: h.Stats.Summary},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
