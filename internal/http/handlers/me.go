package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"avatar_url":   user.AvatarURL,
		"created_at":   user.CreatedAt,
	})
}

// MyPoints returns the authenticated user's points snapshot for a window:
// total, level, and how far the next level is.
func (h *Handler) MyPoints(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	window, err := parseWindowQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown window"})
		return
	}

	snap, err := h.Leaderboard.GetSnapshot(c.Request.Context(), userID, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load points"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// MyPointsHistory returns the user's ledger rows inside the window, oldest
// first, for the audit view.
func (h *Handler) MyPointsHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	window, err := parseWindowQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown window"})
		return
	}

	events, err := h.LedgerRepo.QueryByUser(c.Request.Context(), userID, window, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
