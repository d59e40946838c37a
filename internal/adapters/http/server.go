package http

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/3-lines-studio/storefront/internal/observability"
)

const shutdownTimeout = 5 * time.Second

type RouterOptions struct {
	Pages http.Handler
	// Public serves static assets; exported output in production, the
	// public directory in development.
	Public fs.FS
	// Reload is set in development only.
	Reload *ReloadBroker
	Logger *zap.Logger
}

func newBaseRouter(logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

// NewPreviewRouter serves exported or live-rendered product pages.
func NewPreviewRouter(opts RouterOptions) http.Handler {
	r := newBaseRouter(opts.Logger)

	if opts.Reload != nil {
		r.Get(reloadPath, opts.Reload.ServeHTTP)
	}

	r.Handle("/*", NewPublicHandler(opts.Public, opts.Pages))
	return r
}

func NewAPIRouter(api *CatalogAPI, logger *zap.Logger) http.Handler {
	r := newBaseRouter(logger)
	api.Mount(r)
	return r
}

// ListenAndServe runs handler on addr until ctx is cancelled, then shuts the
// server down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Long-lived reload streams end with ctx instead of holding up Shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped", zap.String("addr", addr))
	return nil
}
