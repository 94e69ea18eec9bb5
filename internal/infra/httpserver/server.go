package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"opportunity_followup_reminders/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Pinger is the subset of *sql.DB the health check needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server exposes the internal operational surface: a health check and a
// manual trigger for the reminder sweep, mirroring the directly invocable
// sweep entry point.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger
}

func New(addr string, svc app.ReminderService, db Pinger, logger *logrus.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      NewRouter(svc, db, logger),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: sweepHandlerTimeout,
		},
		logger: logger,
	}
}

// NewRouter builds the internal route table. Exposed separately so tests can
// drive it with httptest without binding a listener.
func NewRouter(svc app.ReminderService, db Pinger, logger *logrus.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			logger.Errorf("health check: database ping failed: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/internal/reminders/run", func(w http.ResponseWriter, req *http.Request) {
		result, err := svc.RunReminders(req.Context())
		if err != nil {
			logger.Errorf("manual reminder sweep failed: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	return r
}

// sweepHandlerTimeout must cover a full manual sweep.
const sweepHandlerTimeout = 5 * time.Minute

// ListenAndServe blocks serving the internal surface until Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Infof("Internal HTTP surface listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
