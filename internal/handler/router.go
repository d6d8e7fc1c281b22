package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RefreshSource exposes the shared refresh counter to the dashboard.
type RefreshSource interface {
	Version() int64
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type RouterConfig struct {
	Admin          service.AdminService
	Refresh        RefreshSource
	AdminUser      string
	AdminToken     string
	RequestTimeout time.Duration
	Log            *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	if cfg.AdminUser == "" {
		cfg.AdminUser = "admin"
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthz(cfg.Admin, cfg.RequestTimeout, cfg.Log))
	if cfg.Refresh != nil {
		r.Get("/ws", cfg.Refresh.ServeWS)
	}

	r.Group(func(r chi.Router) {
		r.Use(requestLogger(cfg.Log))
		r.Use(requireOperator(cfg.AdminUser, cfg.AdminToken))
		RegisterDashboard(r, NewDashboard(cfg.Admin, cfg.Refresh, cfg.RequestTimeout, cfg.Log))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requestLogger(cfg.Log))
		r.Use(requireAdminToken(cfg.AdminToken))
		RegisterAdminHandlers(r, cfg.Admin, cfg.RequestTimeout, cfg.Log)
	})

	return r
}

func healthz(admin service.AdminService, timeout time.Duration, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if _, err := admin.ListQuestions(ctx); err != nil {
			log.Warn("health check failed", zap.Error(err))
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}
}
