// Package services provides infrastructure services.
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/orris-inc/tracker/internal/application/activity/dto"
	"github.com/orris-inc/tracker/internal/shared/goroutine"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

const (
	activityWriteWait  = 10 * time.Second
	activityPongWait   = 60 * time.Second
	activityPingPeriod = (activityPongWait * 9) / 10
	activityMaxMessage = 512
	activitySendBuffer = 64
)

// ErrHubClosed is returned by Serve after Shutdown.
var ErrHubClosed = errors.New("activity hub is shut down")

// ActivityConn is one websocket listener of a project's activity.
type ActivityConn struct {
	ID          string
	UserID      uint
	ProjectID   uint
	Send        chan []byte
	ConnectedAt time.Time
	closed      atomic.Bool
}

// TrySend queues data without blocking. It returns false when the connection is
// closed or its buffer is full.
func (c *ActivityConn) TrySend(data []byte) (sent bool) {
	if c.closed.Load() {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Close marks the connection as closed and closes the send channel.
func (c *ActivityConn) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.Send)
	}
}

// ActivityHub fans appended events out to the websocket listeners of their project.
type ActivityHub struct {
	conns   map[string]*ActivityConn
	connsMu sync.RWMutex

	upgrader websocket.Upgrader
	shutdown atomic.Bool

	logger logger.Interface
}

// NewActivityHub creates a hub. allowedOrigins restricts browser upgrades; "*"
// allows any origin and requests without an Origin header are always accepted.
func NewActivityHub(log logger.Interface, allowedOrigins []string) *ActivityHub {
	h := &ActivityHub{
		conns:  make(map[string]*ActivityConn),
		logger: log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// Register adds a listener for projectID.
func (h *ActivityHub) Register(userID, projectID uint) *ActivityConn {
	conn := &ActivityConn{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProjectID:   projectID,
		Send:        make(chan []byte, activitySendBuffer),
		ConnectedAt: time.Now(),
	}

	h.connsMu.Lock()
	h.conns[conn.ID] = conn
	h.connsMu.Unlock()

	h.logger.Debugw("activity listener registered",
		"conn_id", conn.ID,
		"user_id", userID,
		"project_id", projectID,
	)
	return conn
}

// Unregister removes a listener and closes its send channel.
func (h *ActivityHub) Unregister(connID string) {
	h.connsMu.Lock()
	conn, ok := h.conns[connID]
	if ok {
		delete(h.conns, connID)
	}
	h.connsMu.Unlock()

	if ok {
		conn.Close()
		h.logger.Debugw("activity listener unregistered", "conn_id", connID)
	}
}

// Broadcast sends msg to every listener of its project. Slow listeners lose the
// message instead of blocking the caller.
func (h *ActivityHub) Broadcast(msg *dto.ActivityMessage) {
	if msg == nil || h.shutdown.Load() {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Errorw("failed to marshal activity message", "event_id", msg.ID, "error", err)
		return
	}

	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	for _, conn := range h.conns {
		if conn.ProjectID != msg.ProjectID {
			continue
		}
		if !conn.TrySend(data) {
			h.logger.Debugw("activity message dropped",
				"conn_id", conn.ID,
				"event_id", msg.ID,
			)
		}
	}
}

// ClientCount returns the number of listeners of projectID; 0 counts all listeners.
func (h *ActivityHub) ClientCount(projectID uint) int {
	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	if projectID == 0 {
		return len(h.conns)
	}
	n := 0
	for _, conn := range h.conns {
		if conn.ProjectID == projectID {
			n++
		}
	}
	return n
}

// Serve upgrades the request and streams the project's activity until the client
// goes away. It blocks for the lifetime of the connection.
func (h *ActivityHub) Serve(w http.ResponseWriter, r *http.Request, userID, projectID uint) error {
	if h.shutdown.Load() {
		return ErrHubClosed
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade activity connection: %w", err)
	}

	conn := h.Register(userID, projectID)

	goroutine.SafeGo(h.logger, "activity-writer-"+conn.ID, func() {
		h.writePump(ws, conn)
	})

	h.readPump(ws, conn)
	return nil
}

// readPump drains client frames so pongs and close frames are processed.
func (h *ActivityHub) readPump(ws *websocket.Conn, conn *ActivityConn) {
	defer h.Unregister(conn.ID)

	ws.SetReadLimit(activityMaxMessage)
	_ = ws.SetReadDeadline(time.Now().Add(activityPongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(activityPongWait))
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warnw("activity connection closed unexpectedly", "conn_id", conn.ID, "error", err)
			}
			return
		}
	}
}

func (h *ActivityHub) writePump(ws *websocket.Conn, conn *ActivityConn) {
	ticker := time.NewTicker(activityPingPeriod)
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()

	for {
		select {
		case data, ok := <-conn.Send:
			_ = ws.SetWriteDeadline(time.Now().Add(activityWriteWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				h.Unregister(conn.ID)
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(activityWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Unregister(conn.ID)
				return
			}
		}
	}
}

// Shutdown closes every listener. Safe to call multiple times.
func (h *ActivityHub) Shutdown() {
	if !h.shutdown.CompareAndSwap(false, true) {
		return
	}

	h.connsMu.Lock()
	for id, conn := range h.conns {
		conn.Close()
		delete(h.conns, id)
	}
	h.connsMu.Unlock()

	h.logger.Infow("activity hub shut down")
}
