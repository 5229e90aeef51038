package handlers

import (
	"net/http"

	"community_backend/internal/domain"
	"community_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Auth exchanges a platform identity for a JWT. Session management lives
// upstream; this endpoint trusts the gateway-verified username and finds or
// creates the matching user row.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		user = &domain.User{
			Username:    req.Username,
			DisplayName: req.DisplayName,
		}
		if user.DisplayName == "" {
			user.DisplayName = req.Username
		}
		if err := h.UserRepo.Create(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"avatar_url":   user.AvatarURL,
		},
	})
}
