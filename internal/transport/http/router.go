package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"pushrelay/internal/handler"
	"pushrelay/internal/httputil"
	"pushrelay/internal/metrics"
	relaymw "pushrelay/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	NotificationHandler *handler.NotificationHandler
	Metrics             *metrics.Metrics
	Logger              *zap.Logger
}

// NewRouter creates and configures a new Chi router
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(relaymw.ZapLogger(cfg.Logger))
	r.Use(relaymw.ZapRecoverer(cfg.Logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", cfg.Metrics.Handler())

	r.Post("/register-device", cfg.NotificationHandler.RegisterDevice)
	r.Post("/send-notification", cfg.NotificationHandler.SendNotification)

	return r
}
