package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Handler issues guest session tokens. A guest picks a display name and
// gets a player id minted server-side.
type Handler struct {
	secret []byte
	ttl    time.Duration
}

func NewHandler(secret []byte) *Handler {
	return &Handler{secret: secret, ttl: 24 * time.Hour}
}

type guestRequest struct {
	Name string `json:"name" binding:"required"`
}

// Guest handles POST /auth/guest.
func (h *Handler) Guest(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	playerID := uuid.NewString()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  playerID,
		"name": req.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(h.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playerId": playerID,
		"name":     req.Name,
		"token":    token,
	})
}
