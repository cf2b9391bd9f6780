package api

import (
	"github.com/mylists/mylists-server/internal/medialist"
	"github.com/mylists/mylists-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Auth      *service.AuthService
	User      *service.UserService
	List      *service.ListService
	Label     *service.LabelService
	Stats     *service.StatsService
	MediaList *medialist.Service
}
