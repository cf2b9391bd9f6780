// Package store defines the persistence interface for the MyLists server.
package store

import (
	"context"

	"github.com/mylists/mylists-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	IncrementProfileViews(ctx context.Context, userID string) error
	IncrementListViews(ctx context.Context, userID string, mediaType domain.MediaType) error

	// Auth Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Follows
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	ListFollowers(ctx context.Context, userID string) ([]*domain.User, error)
	ListFollows(ctx context.Context, userID string) ([]*domain.User, error)
	CountFollows(ctx context.Context, userID string) (followers, follows int, err error)

	// Media catalog
	CreateMedia(ctx context.Context, media *domain.Media) error
	GetMedia(ctx context.Context, mediaType domain.MediaType, id int64) (*domain.Media, error)

	// List entries
	CreateListEntry(ctx context.Context, entry *domain.ListEntry) error
	GetListEntry(ctx context.Context, mediaType domain.MediaType, userID string, mediaID int64) (*domain.ListEntry, error)
	UpdateListEntry(ctx context.Context, entry *domain.ListEntry) error
	DeleteListEntry(ctx context.Context, mediaType domain.MediaType, userID string, mediaID int64) error
	CountListEntries(ctx context.Context, mediaType domain.MediaType, userID string) (int, error)
	ListMediaIDs(ctx context.Context, mediaType domain.MediaType, userID string) ([]int64, error)
	QueryMediaList(ctx context.Context, q ListQuery) (*ListPage, error)

	// Labels
	AddLabel(ctx context.Context, mediaType domain.MediaType, userID string, mediaID int64, label string) error
	RemoveLabel(ctx context.Context, mediaType domain.MediaType, userID string, mediaID int64, label string) error
	RenameLabel(ctx context.Context, mediaType domain.MediaType, userID, oldName, newName string) (int, error)
	DeleteLabel(ctx context.Context, mediaType domain.MediaType, userID, label string) (int, error)
	ListLabels(ctx context.Context, mediaType domain.MediaType, userID string) ([]domain.Label, error)
	ListLabelMedia(ctx context.Context, mediaType domain.MediaType, userID, label string) ([]domain.MediaSummary, error)

	// Statistics
	ListAggregates(ctx context.Context, mediaType domain.MediaType, userID string) (*ListAggregates, error)
}
