package user

import (
	"context"
	"net/http"
	"time"

	"furniture_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	clockLayout  = "2006/01/02 15:04:05"
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	// Origins are already filtered by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// CartWebSocket pushes the cart whenever it changes and a clock tick every
// second.
func (h *Handler) CartWebSocket(c *gin.Context) {
	sid := middleware.SessionID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("❌ websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, unsubscribe := h.notifier.Subscribe(ctx, sid)
	defer unsubscribe()

	// The client never sends anything useful; reading only detects close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(v any) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(v); err != nil {
			h.log.Debug("websocket write failed", zap.String("session", sid), zap.Error(err))
			return false
		}
		return true
	}

	if !send(gin.H{"type": "connected", "cart": h.cart.View(sid)}) {
		return
	}

	clock := time.NewTicker(h.tick)
	defer clock.Stop()
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !send(gin.H{"type": "cart_updated", "event": ev, "cart": h.cart.View(sid)}) {
				return
			}
		case now := <-clock.C:
			if !send(gin.H{"type": "tick", "time": now.Format(clockLayout)}) {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
