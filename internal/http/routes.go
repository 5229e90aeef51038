package http

import (
	"community_backend/internal/config"
	"community_backend/internal/http/handlers"
	"community_backend/internal/http/middleware"
	"community_backend/internal/level"
	"community_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the full HTTP surface: health, auth, leaderboard
// reads, point-event ingestion, and the websocket live feed.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, levels *level.Table, cfg *config.Config, version string) *ws.Hub {
	hub := ws.NewHub()
	h := handlers.NewHandler(db, levels, cfg, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	{
		v1.POST("/auth", h.Auth)

		// Leaderboard reads
		v1.GET("/leaderboard", middleware.JWT(), h.GetLeaderboard)
		v1.GET("/levels", h.GetLevels)

		// Current user
		v1.GET("/me", middleware.JWT(), h.Me)
		v1.GET("/me/points", middleware.JWT(), h.MyPoints)
		v1.GET("/me/points/history", middleware.JWT(), h.MyPointsHistory)

		// Scored-action ingestion (per-user limit on top of the per-IP one)
		ingestRL := middleware.IngestRateLimit(cfg.IngestRateLimit, cfg.IngestRateWindow)
		v1.POST("/events", middleware.JWT(), ingestRL, h.RecordEvent)
	}

	// Live feed: clients refetch the leaderboard on points_recorded notices
	r.GET("/ws", h.WS)

	return hub
}
