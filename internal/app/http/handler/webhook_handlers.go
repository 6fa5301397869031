package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"prnotify/internal/app/dto"
)

// Webhook accepts a Gitea delivery and processes it in the background. The
// event source always gets a success response; processing failures are
// operator-visible through logs only, so Gitea never retries or disables
// the hook. Only a body that is not a JSON object is rejected.
func (h *Handler) Webhook(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: dto.Error{
				Code:    "BAD_REQUEST",
				Message: "body must be a JSON object",
			},
		})
		return
	}

	// One goroutine per delivery, detached from the request context: the
	// response goes out before processing finishes, and there is no
	// queueing or backpressure between deliveries.
	go h.NotifySvc.Dispatch(context.Background(), payload)

	c.JSON(http.StatusAccepted, dto.WebhookAccepted{Status: "accepted"})
}
