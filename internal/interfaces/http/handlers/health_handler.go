package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports process liveness.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health responds with a static OK payload.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
