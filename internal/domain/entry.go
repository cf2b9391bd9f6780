package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidValue is returned when a list entry update is out of range.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnsupported is returned when an update does not apply to the media type.
	ErrUnsupported = errors.New("unsupported for this media type")
)

const (
	MaxScore   = 10.0
	MaxFeeling = 5
	MaxRedo    = 10
)

// ListEntry is one media inside a user's list.
// At most one entry exists per (user, media, media type).
type ListEntry struct {
	UserID         string     `json:"user_id"`
	MediaID        int64      `json:"media_id"`
	MediaType      MediaType  `json:"-"`
	Status         Status     `json:"status"`
	Favorite       bool       `json:"favorite"`
	Score          *float64   `json:"score"`
	Feeling        *int       `json:"feeling"`
	Comment        *string    `json:"comment"`
	Redo           int        `json:"redo"`
	Total          int        `json:"total"`
	CompletionDate *time.Time `json:"completion_date"`
	AddedAt        time.Time  `json:"added_at"`

	// Progress columns; only those of the entry's media type are stored.
	CurrentSeason      int `json:"current_season,omitempty"`
	LastEpisodeWatched int `json:"last_episode_watched,omitempty"`
	ActualPage         int `json:"actual_page,omitempty"`
	Playtime           int `json:"playtime,omitempty"` // minutes
}

// NewListEntry builds the entry created when a user adds media with a status.
func NewListEntry(userID string, media *Media, status Status, now time.Time) *ListEntry {
	e := &ListEntry{
		UserID:    userID,
		MediaID:   media.ID,
		MediaType: media.Type,
		AddedAt:   now,
	}
	e.setStatus(media, status, now)
	if media.Type.IsTV() && status != StatusCompleted && !isResetStatus(status) {
		e.CurrentSeason, e.LastEpisodeWatched, e.Total = 1, 1, 1
	}
	return e
}

func isResetStatus(s Status) bool {
	return s == StatusRandom || s.IsPlanned()
}

// ApplyStatus changes the status and moves progress accordingly.
// Changing status always resets the redo count.
func (e *ListEntry) ApplyStatus(media *Media, status Status) error {
	if !media.Type.HasStatus(status) {
		return fmt.Errorf("status %q: %w", status, ErrInvalidValue)
	}
	e.setStatus(media, status, time.Now())
	e.Redo = 0
	return nil
}

func (e *ListEntry) setStatus(media *Media, status Status, now time.Time) {
	e.Status = status
	completed := status == StatusCompleted

	switch {
	case media.Type.IsTV():
		if completed {
			e.CurrentSeason = len(media.EpsPerSeason)
			if n := len(media.EpsPerSeason); n > 0 {
				e.LastEpisodeWatched = media.EpsPerSeason[n-1]
			}
			e.Total = media.TotalEpisodes
		} else if isResetStatus(status) {
			e.CurrentSeason, e.LastEpisodeWatched, e.Total = 1, 0, 0
		}
	case media.Type == MediaMovies:
		if completed {
			e.Total = 1
		} else {
			e.Total = 0
		}
	case media.Type == MediaBooks:
		if completed {
			e.ActualPage = media.Pages
			e.Total = media.Pages
		} else if status.IsPlanned() {
			e.ActualPage, e.Total = 0, 0
		}
	}

	if completed {
		t := now
		e.CompletionDate = &t
	}
}

// SetMetric stores a rating. A nil value clears it. The metric is a 0-5
// feeling when usesFeeling is set, a 0-10 score otherwise.
func (e *ListEntry) SetMetric(usesFeeling bool, value *float64) error {
	if value == nil {
		e.Score, e.Feeling = nil, nil
		return nil
	}
	v := *value
	if usesFeeling {
		if v < 0 || v > MaxFeeling || v != float64(int(v)) {
			return fmt.Errorf("feeling %v: %w", v, ErrInvalidValue)
		}
		f := int(v)
		e.Feeling = &f
		return nil
	}
	if v < 0 || v > MaxScore {
		return fmt.Errorf("score %v: %w", v, ErrInvalidValue)
	}
	e.Score = &v
	return nil
}

// SetRedo records how many times a completed media was redone and
// recomputes the progress total.
func (e *ListEntry) SetRedo(media *Media, redo int) error {
	if redo < 0 || redo > MaxRedo {
		return fmt.Errorf("redo %d: %w", redo, ErrInvalidValue)
	}
	if e.Status != StatusCompleted {
		return fmt.Errorf("redo requires status %s: %w", StatusCompleted, ErrInvalidValue)
	}

	var base int
	switch {
	case media.Type.IsTV():
		base = media.TotalEpisodes
	case media.Type == MediaMovies:
		base = 1
	case media.Type == MediaBooks:
		base = media.Pages
	default:
		return ErrUnsupported
	}
	e.Redo = redo
	e.Total = base + redo*base
	return nil
}

// SetComment stores a comment. An empty string clears it.
func (e *ListEntry) SetComment(comment string) {
	if comment == "" {
		e.Comment = nil
		return
	}
	e.Comment = &comment
}

// SetSeason moves a TV entry to the first episode of a season.
func (e *ListEntry) SetSeason(media *Media, season int) error {
	if !media.Type.IsTV() {
		return ErrUnsupported
	}
	if season < 1 || season > len(media.EpsPerSeason) {
		return fmt.Errorf("season %d: %w", season, ErrInvalidValue)
	}
	e.CurrentSeason = season
	e.LastEpisodeWatched = 1
	e.Total = episodesBefore(media, season) + 1 + e.Redo*media.TotalEpisodes
	return nil
}

// SetEpisode moves a TV entry to an episode of its current season.
func (e *ListEntry) SetEpisode(media *Media, episode int) error {
	if !media.Type.IsTV() {
		return ErrUnsupported
	}
	if e.CurrentSeason < 1 || e.CurrentSeason > len(media.EpsPerSeason) {
		return fmt.Errorf("season %d: %w", e.CurrentSeason, ErrInvalidValue)
	}
	if episode < 1 || episode > media.EpsPerSeason[e.CurrentSeason-1] {
		return fmt.Errorf("episode %d: %w", episode, ErrInvalidValue)
	}
	e.LastEpisodeWatched = episode
	e.Total = episodesBefore(media, e.CurrentSeason) + episode + e.Redo*media.TotalEpisodes
	return nil
}

func episodesBefore(media *Media, season int) int {
	n := 0
	for _, eps := range media.EpsPerSeason[:season-1] {
		n += eps
	}
	return n
}

// SetPage records the current page of a book.
func (e *ListEntry) SetPage(media *Media, page int) error {
	if media.Type != MediaBooks {
		return ErrUnsupported
	}
	if page < 0 || (media.Pages > 0 && page > media.Pages) {
		return fmt.Errorf("page %d: %w", page, ErrInvalidValue)
	}
	e.ActualPage = page
	e.Total = page + e.Redo*media.Pages
	return nil
}

// SetPlaytime records game playtime given in hours.
func (e *ListEntry) SetPlaytime(media *Media, hours int) error {
	if media.Type != MediaGames {
		return ErrUnsupported
	}
	if hours < 0 {
		return fmt.Errorf("playtime %d: %w", hours, ErrInvalidValue)
	}
	e.Playtime = hours * 60
	return nil
}
