package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tessera-app/tessera/config"
	"github.com/tessera-app/tessera/protocol"
)

const WriteTimeout = 10 * time.Second

// Hub fans moderation feed events out to connected WebSocket subscribers.
type Hub struct {
	subs map[*websocket.Conn]struct{}
	mu   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Subscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[conn] = struct{}{}
	slog.Info("ws: subscribed", "total", len(h.subs))
}

func (h *Hub) Unsubscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, conn)
	slog.Info("ws: unsubscribed", "total", len(h.subs))
}

// BroadcastEvent encodes the event into an envelope and sends it to every
// subscriber. A failed write drops that subscriber.
func (h *Hub) BroadcastEvent(eventType protocol.EventType, event *protocol.ModerationEvent) {
	env := protocol.NewEnvelope(eventType, event)
	data, err := env.Encode()
	if err != nil {
		slog.Error("ws: encode envelope error", "error", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.subs))
	for conn := range h.subs {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			slog.Warn("ws: broadcast error (client likely disconnected)", "error", err)
			h.Unsubscribe(conn)
		}
	}
}

type WSHandler struct {
	hub      *Hub
	cfg      *config.Config
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *Hub, cfg *config.Config) *WSHandler {
	h := &WSHandler{hub: hub, cfg: cfg}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *WSHandler) checkOrigin(r *http.Request) bool {
	allowedOrigins := h.cfg.Server.AllowedOrigins
	for _, o := range allowedOrigins {
		if o == "*" {
			return true
		}
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return h.cfg.Server.AllowEmptyOrigin
	}
	for _, allowed := range allowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}

// ServeHTTP upgrades the connection and holds it open. The feed is one-way:
// inbound frames are read only to detect disconnects.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("ws: upgrade error", "error", err)
		return
	}
	defer conn.Close()

	h.hub.Subscribe(conn)
	defer h.hub.Unsubscribe(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("ws: read error", "error", err)
			}
			return
		}
	}
}
