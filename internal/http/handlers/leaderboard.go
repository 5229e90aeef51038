package handlers

import (
	"net/http"
	"strconv"

	"community_backend/internal/domain"
	"community_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// parseWindowQuery reads the window query param, defaulting when absent.
func parseWindowQuery(c *gin.Context) (domain.Window, error) {
	v := c.Query("window")
	if v == "" {
		return domain.DefaultWindow, nil
	}
	return domain.ParseWindow(v)
}

// GetLeaderboard returns the ranked top-N for the requested window plus the
// requesting user's own rank and snapshot, even when they fall outside the
// page.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	window, err := parseWindowQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown window"})
		return
	}

	limit := h.DefaultLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > h.MaxLimit {
		limit = h.MaxLimit
	}

	page, err := h.Leaderboard.GetLeaderboard(c.Request.Context(), window, limit, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	middleware.LeaderboardQueries.WithLabelValues(string(window)).Inc()

	c.JSON(http.StatusOK, page)
}

// GetLevels returns the full ordered level definition table for display.
func (h *Handler) GetLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": h.Leaderboard.Levels()})
}
