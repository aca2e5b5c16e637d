package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	env     string
	started time.Time
}

func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env, started: time.Now()}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "online",
		"message":        "Sistema de agendamento da barbearia",
		"environment":    h.env,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
