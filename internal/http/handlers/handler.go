package handlers

import (
	"community_backend/internal/config"
	"community_backend/internal/level"
	"community_backend/internal/repository"
	"community_backend/internal/service"
	"community_backend/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB          *pgxpool.Pool
	UserRepo    *repository.UserRepository
	LedgerRepo  *repository.LedgerRepository
	Leaderboard *service.LeaderboardService
	Points      *service.PointsService
	Hub         *ws.Hub

	DefaultLimit int
	MaxLimit     int
}

func NewHandler(db *pgxpool.Pool, levels *level.Table, cfg *config.Config, hub *ws.Hub) *Handler {
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	return &Handler{
		DB:           db,
		UserRepo:     userRepo,
		LedgerRepo:   ledgerRepo,
		Leaderboard:  service.NewLeaderboardService(ledgerRepo, userRepo, levels),
		Points:       service.NewPointsService(ledgerRepo, cfg.Points),
		Hub:          hub,
		DefaultLimit: cfg.LeaderboardLimit,
		MaxLimit:     cfg.LeaderboardMaxLimit,
	}
}

// getUserID pulls the authenticated user's ID out of the gin context.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
