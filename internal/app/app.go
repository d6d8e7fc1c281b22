package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/handler"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/logger"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/seed"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/service"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/storage"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type App struct {
	cfg Config
	log *zap.Logger
	db  *pgxpool.Pool
	hub *ws.Hub
	srv *http.Server
}

func New(cfg Config) (*App, error) {
	l, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: l}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	qs, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.hub = ws.NewHub(l)
	adminSvc := service.NewAdminService(qs, a.hub)

	if cfg.SeedFile != "" {
		n, err := seed.ApplyFile(ctx, adminSvc, cfg.SeedFile, l)
		if err != nil {
			a.Close()
			return nil, err
		}
		l.Info("seed file processed", zap.String("file", cfg.SeedFile), zap.Int("inserted", n))
	}

	router := handler.NewRouter(handler.RouterConfig{
		Admin:          adminSvc,
		Refresh:        a.hub,
		AdminUser:      cfg.AdminUser,
		AdminToken:     cfg.AdminToken,
		RequestTimeout: cfg.RequestTimeout,
		Log:            l,
	})

	a.srv = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context) (storage.QuestionStore, error) {
	if a.cfg.StoreDriver == StoreDriverMemory {
		a.log.Warn("using in-memory question store, data is lost on restart")
		return storage.NewMemoryQuestionStore(), nil
	}

	db, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.db = db

	if err := db.Ping(ctx); err != nil {
		return nil, err
	}

	qs := storage.NewPostgresQuestionStore(db)
	if a.cfg.AutoMigrate {
		if err := qs.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		a.log.Info("questions schema ensured")
	}
	return qs, nil
}

// Run serves until ctx is canceled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("server started",
		zap.String("addr", a.cfg.HTTPAddr),
		zap.String("store", a.cfg.StoreDriver),
		zap.String("log_level", a.cfg.LogLevel),
		zap.String("log_file", a.cfg.LogFile),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.hub != nil {
		a.hub.Close()
	}
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (a *App) Close() {
	if a.hub != nil {
		a.hub.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
