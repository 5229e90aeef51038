package handlers

import (
	"errors"
	"net/http"
	"time"

	"community_backend/internal/domain"
	"community_backend/internal/http/middleware"
	"community_backend/internal/service"
	"community_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// same-origin enforcement happens at the gateway
	CheckOrigin: func(r *http.Request) bool { return true },
}

type recordEventRequest struct {
	BeneficiaryID int64     `json:"beneficiary_id"`
	ActionKind    string    `json:"action_kind"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// RecordEvent ingests one scored action from the upstream actions subsystem.
// The actor is the authenticated caller. A rejected event is not recorded;
// the upstream caller must not retry the same malformed payload. No
// deduplication happens here.
func (h *Handler) RecordEvent(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req recordEventRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	action := service.ScoredAction{
		ActorID:       userID,
		BeneficiaryID: req.BeneficiaryID,
		Kind:          domain.ActionKind(req.ActionKind),
		OccurredAt:    req.OccurredAt,
	}
	if action.Kind == domain.ActionCreatePost && action.BeneficiaryID == 0 {
		action.BeneficiaryID = userID
	}

	events, err := h.Points.RecordAction(c.Request.Context(), action)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEvent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record event"})
		return
	}

	for _, ev := range events {
		middleware.PointEventsRecorded.WithLabelValues(string(ev.Kind)).Inc()
		if h.Hub != nil {
			h.Hub.Broadcast(ws.PointsRecorded{
				UserID: ev.BeneficiaryUserID,
				Kind:   ev.Kind,
				Points: ev.Points,
			})
		}
	}

	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.EventID.String())
	}

	c.JSON(http.StatusOK, gin.H{
		"recorded":  len(events),
		"event_ids": ids,
	})
}

// WS upgrades the connection and subscribes the caller to the live feed.
func (h *Handler) WS(c *gin.Context) {
	token := c.Query("token")
	userID, err := service.ParseJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(userID, conn, h.Hub)
	go client.Run()
}
