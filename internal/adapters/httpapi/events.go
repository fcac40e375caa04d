package httpapi

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
)

const (
	streamBuffer = 64
	pingPeriod   = 30 * time.Second
	writeWait    = 10 * time.Second
)

// localOrigin accepts requests without an Origin header and browser
// requests coming from the loopback interface
func localOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// streamEvents upgrades the connection and forwards every bus event as
// {"event": ..., "payload": ...} until the client goes away
func (h *handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	name := "websocket-" + middleware.GetReqID(r.Context())

	// subscribe before the handshake completes so no event published after
	// the client sees the upgrade is missed
	buffer := make(chan domain.WireEvent, streamBuffer)
	unsubscribe := h.monitor.Subscribe(name, func(e domain.Event) {
		select {
		case buffer <- e.Wire():
		default:
			logging.Logger.Warn("Event stream is behind, dropping event", "subscriber", name, "event_id", e.ID)
		}
	})
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		logging.Logger.Warn("Failed to upgrade websocket connection", "error", err)
		return
	}
	h.trackStream(conn)
	defer h.untrackStream(conn)
	logging.Logger.Info("Event stream opened", "subscriber", name, "remote", r.RemoteAddr)

	// the read side only exists to notice close frames
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			logging.Logger.Info("Event stream closed", "subscriber", name)
			return
		case msg := <-buffer:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logging.Logger.Warn("Failed to write websocket message", "subscriber", name, "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logging.Logger.Debug("Ping failed", "subscriber", name, "error", err)
				return
			}
		}
	}
}

func (h *handler) trackStream(conn *websocket.Conn) {
	h.streamMu.Lock()
	defer h.streamMu.Unlock()
	h.streams[conn] = struct{}{}
}

func (h *handler) untrackStream(conn *websocket.Conn) {
	h.streamMu.Lock()
	delete(h.streams, conn)
	h.streamMu.Unlock()

	if err := conn.Close(); err != nil {
		logging.Logger.Debug("Failed to close websocket connection", "error", err)
	}
}

// closeStreams sends a close frame to every open stream; the read loops
// then end and each handler returns
func (h *handler) closeStreams() {
	h.streamMu.Lock()
	defer h.streamMu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn := range h.streams {
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = conn.Close()
	}
}
