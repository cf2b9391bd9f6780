package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/mylists/mylists-server/internal/api"
	"github.com/mylists/mylists-server/internal/config"
	"github.com/mylists/mylists-server/internal/logger"
	"github.com/mylists/mylists-server/internal/medialist"
	"github.com/mylists/mylists-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.api.Stop()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:      do.MustInvoke[*service.AuthService](i),
		User:      do.MustInvoke[*service.UserService](i),
		List:      do.MustInvoke[*service.ListService](i),
		Label:     do.MustInvoke[*service.LabelService](i),
		Stats:     do.MustInvoke[*service.StatsService](i),
		MediaList: do.MustInvoke[*medialist.Service](i),
	}

	handler := api.NewServer(storeHandle.Store, services, api.Options{
		CORSOrigins:   cfg.Server.CORSOrigins,
		Metrics:       cfg.Server.Metrics,
		AuthPerMinute: cfg.RateLimit.AuthPerMinute,
		AuthBurst:     cfg.RateLimit.AuthBurst,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "metrics", cfg.Server.Metrics)

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
