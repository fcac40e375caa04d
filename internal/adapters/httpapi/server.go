package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
	"github.com/renato0307/prmonitor/internal/services"
)

const requestTimeout = 30 * time.Second

// Server exposes the monitor commands over HTTP and streams events over a WebSocket
type Server struct {
	handler *handler
	server  *http.Server
}

// NewServer creates a server listening on addr
func NewServer(addr string, monitor *services.MonitorService, opener ports.BrowserOpener) *Server {
	h := newHandler(monitor, opener)
	return &Server{
		handler: h,
		server: &http.Server{
			Addr:              addr,
			Handler:           h.routes(),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the listener and serves in the background
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	logging.Logger.Info("HTTP API listening", "addr", listener.Addr().String())

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Error("HTTP API failed", "error", err)
		}
	}()
	return nil
}

// Stop shuts the server down, closing open event streams
func (s *Server) Stop(ctx context.Context) error {
	logging.Logger.Info("Stopping HTTP API")
	s.handler.closeStreams()
	return s.server.Shutdown(ctx)
}

func (h *handler) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		// long-lived stream, no request timeout
		r.Get("/events", h.streamEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))

			r.Get("/prs", h.listPRs)
			r.Post("/prs", h.addPR)
			r.Delete("/prs/{number}", h.deletePR)
			r.Post("/prs/{number}/open", h.openPR)

			r.Get("/token", h.hasToken)
			r.Put("/token", h.setToken)

			r.Get("/task", h.taskStatus)
			r.Post("/task/start", h.startTask)
			r.Post("/task/stop", h.stopTask)

			r.Get("/settings/theme", h.getTheme)
			r.Put("/settings/theme", h.setTheme)
			r.Get("/settings/refresh-time", h.getRefreshTime)
			r.Put("/settings/refresh-time", h.setRefreshTime)
			r.Get("/settings/notifications", h.getNotifications)
			r.Put("/settings/notifications", h.setNotifications)
		})
	})

	return r
}

// requestLogger logs every request with its status and duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds())
	})
}
