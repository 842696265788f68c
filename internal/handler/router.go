package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-console/internal/handler/api"
	"fleet-console/internal/handler/middleware"
	"fleet-console/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, composerHandler *api.ComposerHandler) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, composerHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.NewLogger(logger, cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h *api.ComposerHandler) {
	engine.GET("/health", healthCheck)

	jsonBody := []gin.HandlerFunc{middleware.RequireJSON()}

	apiGroup := engine.Group("/api")
	{
		composer := apiGroup.Group("/composer")
		{
			addRoutes(composer, []route{
				{Method: http.MethodPost, Path: "/sessions", Handler: h.Open, Mw: jsonBody},
				{Method: http.MethodGet, Path: "/sessions/:id", Handler: h.Get},
				{Method: http.MethodDelete, Path: "/sessions/:id", Handler: h.Discard},
				{Method: http.MethodPatch, Path: "/sessions/:id/draft", Handler: h.PatchDraft, Mw: jsonBody},
				{Method: http.MethodPost, Path: "/sessions/:id/validate", Handler: h.Validate},
			})

			session := composer.Group("/sessions/:id")
			addRoutes(session, []route{
				{Method: http.MethodGet, Path: "/assets", Handler: h.ListAssets},
				{Method: http.MethodPost, Path: "/assets/:assetId/toggle", Handler: h.ToggleAsset},
				{Method: http.MethodGet, Path: "/saved-locations", Handler: h.ListSavedLocations},
				{Method: http.MethodPost, Path: "/locations/:field/search", Handler: h.SearchLocations, Mw: jsonBody},
				{Method: http.MethodPost, Path: "/locations/:field/resolve", Handler: h.ResolveLocation, Mw: jsonBody},
				{Method: http.MethodPut, Path: "/locations/:field/manual", Handler: h.SetManualAddress, Mw: jsonBody},
				{Method: http.MethodGet, Path: "/time-slots", Handler: h.ListTimeSlots},
				{Method: http.MethodPut, Path: "/time-slot", Handler: h.SetTimeSlot, Mw: jsonBody},
				{Method: http.MethodPut, Path: "/fuel/type", Handler: h.SelectFuelType, Mw: jsonBody},
				{Method: http.MethodPut, Path: "/fuel/litres", Handler: h.SetLitres, Mw: jsonBody},
				{Method: http.MethodPut, Path: "/fuel/amount", Handler: h.SetAmount, Mw: jsonBody},
			})

			checkout := composer.Group("/sessions/:id")
			checkout.Use(middleware.RequestTimeout(cfg.Backend.RequestTimeout * 2))
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "/init", Handler: h.Init},
				{Method: http.MethodPost, Path: "/confirm", Handler: h.Confirm},
				{Method: http.MethodPost, Path: "/subscription/estimate", Handler: h.EstimateSubscription, Mw: jsonBody},
				{Method: http.MethodPost, Path: "/subscription/payments", Handler: h.InitPayment, Mw: jsonBody},
				{Method: http.MethodPost, Path: "/subscription/payments/:reference/verify", Handler: h.VerifyPayment, Mw: jsonBody},
			})
		}
	}
}

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
