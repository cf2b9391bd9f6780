package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/mylists/mylists-server/internal/auth"
	"github.com/mylists/mylists-server/internal/medialist"
	"github.com/mylists/mylists-server/internal/service"
)

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, log), nil
}

// ProvideStatsService provides the list statistics service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewStatsService(storeHandle.Store, log), nil
}

// ProvideUserService provides the user, profile and follow service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	statsService := do.MustInvoke[*service.StatsService](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewUserService(storeHandle.Store, statsService, log), nil
}

// ProvideListService provides the list entry service.
func ProvideListService(i do.Injector) (*service.ListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewListService(storeHandle.Store, log), nil
}

// ProvideLabelService provides the label service.
func ProvideLabelService(i do.Injector) (*service.LabelService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewLabelService(storeHandle.Store, log), nil
}

// ProvideMediaListService provides the media list query engine.
func ProvideMediaListService(i do.Injector) (*medialist.Service, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return medialist.NewService(storeHandle.Store, log), nil
}
