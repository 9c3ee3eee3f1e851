// Package common provides shared HTTP handler utilities.
package common

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/shared/logger"
)

const (
	// SSEKeepaliveInterval is the interval for sending keepalive messages.
	SSEKeepaliveInterval = 30 * time.Second

	// SSEContentType is the content type for SSE responses.
	SSEContentType = "text/event-stream"
)

// ConnRegistry drops a listener once its stream ends.
type ConnRegistry interface {
	Unregister(connID string)
}

// SSEHandlerBase writes hub messages to a server-sent events response.
type SSEHandlerBase struct {
	registry ConnRegistry
	logger   logger.Interface
}

func NewSSEHandlerBase(registry ConnRegistry, log logger.Interface) *SSEHandlerBase {
	return &SSEHandlerBase{
		registry: registry,
		logger:   log,
	}
}

// SetupSSEResponse sets common SSE response headers.
// Note: CORS headers are handled by global CORS middleware.
func (h *SSEHandlerBase) SetupSSEResponse(c *gin.Context) {
	c.Header("Content-Type", SSEContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable Nginx buffering
}

// SendInitialConnection sends the initial SSE connection comment.
// Returns true if successful, false if write failed.
func (h *SSEHandlerBase) SendInitialConnection(c *gin.Context) bool {
	if _, err := c.Writer.WriteString(": connected\n\n"); err != nil {
		return false
	}
	c.Writer.Flush()
	return true
}

// RunEventLoop frames every message from send as an SSE event named eventName.
// It blocks until the client disconnects, the channel closes or a write fails.
func (h *SSEHandlerBase) RunEventLoop(c *gin.Context, send <-chan []byte, connID, eventName string) {
	keepAliveTicker := time.NewTicker(SSEKeepaliveInterval)
	defer keepAliveTicker.Stop()
	defer h.registry.Unregister(connID)

	ctx := c.Request.Context()

	for {
		select {
		case <-ctx.Done():
			h.logger.Infow("sse connection closed by client", "conn_id", connID)
			return

		case data, ok := <-send:
			if !ok {
				return
			}
			if err := writeEvent(c, eventName, data); err != nil {
				h.logger.Warnw("sse write error", "conn_id", connID, "error", err)
				return
			}
			c.Writer.Flush()

		case <-keepAliveTicker.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				h.logger.Warnw("sse keepalive error", "conn_id", connID, "error", err)
				return
			}
			c.Writer.Flush()
		}
	}
}

func writeEvent(c *gin.Context, name string, data []byte) error {
	if _, err := c.Writer.WriteString("event: " + name + "\ndata: "); err != nil {
		return err
	}
	if _, err := c.Writer.Write(data); err != nil {
		return err
	}
	_, err := c.Writer.WriteString("\n\n")
	return err
}
