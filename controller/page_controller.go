package controller

import (
	"context"
	"net/http"
	"time"

	"cafedir/database"
	"cafedir/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) About(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", gin.H{"title": "About"})
}

func (h *Handler) Contact(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", gin.H{"title": "Contact"})
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		logger.FromGin(c).Warn("database not ready", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
