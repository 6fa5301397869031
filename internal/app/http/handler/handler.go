package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prnotify/internal/domain/notify"
)

type Handler struct {
	NotifySvc notify.Service
	Log       *zap.Logger
}

func New(notifySvc notify.Service, log *zap.Logger) *Handler {
	return &Handler{
		NotifySvc: notifySvc,
		Log:       log,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
