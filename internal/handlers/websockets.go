package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"manufacturing_analytics/internal/models"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConnect serves the live dashboard channel: the client sends filter
// criteria as JSON and receives the recomputed overview for each change.
// An initial unfiltered overview is pushed on connect.
func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine: forwards criteria messages, closes done on
	// disconnect. quit unblocks a reader parked on a full criteriaCh
	// when this loop exits first.
	criteriaCh := make(chan models.Criteria, 1)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go h.startCriteriaReader(conn, criteriaCh, done, quit)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	// Send the unfiltered overview immediately.
	if err := h.sendOverview(c.Request.Context(), conn, models.Criteria{}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case crit := <-criteriaCh:
			if err := h.sendOverview(c.Request.Context(), conn, crit); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// startCriteriaReader drains incoming messages, decoding criteria and
// detecting closure.
func (h *Handler) startCriteriaReader(conn *websocket.Conn, criteriaCh chan<- models.Criteria, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		var crit models.Criteria
		if err := json.Unmarshal(msg, &crit); err != nil {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: "invalid criteria: " + err.Error()})
			continue
		}
		select {
		case criteriaCh <- crit:
		case <-quit:
			return
		}
	}
}

// sendOverview computes and writes the overview for the given criteria
// with a write deadline.
func (h *Handler) sendOverview(ctx context.Context, conn *websocket.Conn, crit models.Criteria) error {
	overview := h.services.Overview(ctx, crit)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "overview", Data: overview})
}
