package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	status, database := http.StatusOK, "ok"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			log.WithError(err).Warn("Database ping failed")
			status, database = http.StatusServiceUnavailable, "unreachable"
		}
	}

	c.JSON(status, gin.H{
		"status":    http.StatusText(status),
		"message":   "Storefront is running",
		"database":  database,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
