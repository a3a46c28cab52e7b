package matchmaker

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the matchmaking endpoints. The JWT middleware injects the
// player id into the gin context.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Join handles POST /match/join.
func (h *Handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	req.PlayerID = c.GetString("playerID")

	room, queued, err := h.svc.Join(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	resp := JoinResponse{Queued: queued, Pool: req.Pool}
	if room != nil {
		resp.RoomID = room.ID
		resp.Players = room.Players
	}
	c.JSON(http.StatusOK, resp)
}

// Solo handles POST /match/solo.
func (h *Handler) Solo(c *gin.Context) {
	var req SoloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	req.PlayerID = c.GetString("playerID")

	room, err := h.svc.Solo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, JoinResponse{RoomID: room.ID, Players: room.Players, Pool: room.Pool})
}

// Cancel handles POST /match/cancel.
func (h *Handler) Cancel(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), c.GetString("playerID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
