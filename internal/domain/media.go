package domain

import (
	"fmt"
	"time"
)

// MediaType identifies one of the tracked media kinds.
// Each kind has its own catalog, list, genre and label tables.
type MediaType string

const (
	MediaSeries MediaType = "series"
	MediaAnime  MediaType = "anime"
	MediaMovies MediaType = "movies"
	MediaGames  MediaType = "games"
	MediaBooks  MediaType = "books"
)

// MediaTypes lists every media kind in display order.
var MediaTypes = []MediaType{MediaSeries, MediaAnime, MediaMovies, MediaGames, MediaBooks}

// ParseMediaType converts a path or query value into a MediaType.
func ParseMediaType(s string) (MediaType, error) {
	for _, mt := range MediaTypes {
		if string(mt) == s {
			return mt, nil
		}
	}
	return "", fmt.Errorf("unknown media type %q", s)
}

// CoverURL returns the public path of a cover image of this media type.
func (mt MediaType) CoverURL(imageCover string) string {
	return "/static/covers/" + string(mt) + "_covers/" + imageCover
}

// IsTV reports whether the kind is episodic (series or anime).
func (mt MediaType) IsTV() bool {
	return mt == MediaSeries || mt == MediaAnime
}

// Media is a catalog entry. Catalog rows are read-only for list queries;
// they are written by the seeder and by catalog imports.
type Media struct {
	ID           int64     `json:"id"`
	Type         MediaType `json:"media_type"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	VoteAverage  float64   `json:"vote_average"`
	Popularity   float64   `json:"popularity"`
	ImageCover   string    `json:"image_cover"`
	APIID        int64     `json:"api_id"`
	LockStatus   bool      `json:"lock_status"`
	LastUpdate   time.Time `json:"last_update"`

	// Duration is minutes per episode for TV and runtime for movies.
	Duration int `json:"duration,omitempty"`

	// TV
	CreatedBy     string   `json:"created_by,omitempty"`
	TotalSeasons  int      `json:"total_seasons,omitempty"`
	TotalEpisodes int      `json:"total_episodes,omitempty"`
	EpsPerSeason  []int    `json:"eps_per_season,omitempty"`
	Networks      []string `json:"networks,omitempty"`

	// Movies
	DirectorName     string `json:"director_name,omitempty"`
	OriginalLanguage string `json:"original_language,omitempty"`

	// Games
	Companies []string `json:"companies,omitempty"`
	Platforms []string `json:"platforms,omitempty"`

	// Books
	Pages   int      `json:"pages,omitempty"`
	Authors []string `json:"authors,omitempty"`

	Actors []string `json:"actors,omitempty"`
	Genres []string `json:"genres,omitempty"`
}

// SecondaryNames returns the free-text credits stored on the catalog row
// itself, which the list search matches alongside the titles.
func (m *Media) SecondaryNames() []string {
	var names []string
	if m.CreatedBy != "" {
		names = append(names, m.CreatedBy)
	}
	if m.DirectorName != "" {
		names = append(names, m.DirectorName)
	}
	return names
}

// TagNames returns the tag rows of the media for a given tag kind.
func (m *Media) TagNames(kind TagKind) []string {
	switch kind {
	case TagNetwork:
		return m.Networks
	case TagActor:
		return m.Actors
	case TagCompany:
		return m.Companies
	case TagPlatform:
		return m.Platforms
	case TagAuthor:
		return m.Authors
	default:
		return nil
	}
}

// TagKind names a searchable side table attached to a catalog.
type TagKind string

const (
	TagNetwork  TagKind = "networks"
	TagActor    TagKind = "actors"
	TagCompany  TagKind = "companies"
	TagPlatform TagKind = "platforms"
	TagAuthor   TagKind = "authors"
)

// SearchTags returns the side tables searched for a media type.
func (mt MediaType) SearchTags() []TagKind {
	switch mt {
	case MediaSeries, MediaAnime:
		return []TagKind{TagNetwork, TagActor}
	case MediaMovies:
		return []TagKind{TagActor}
	case MediaGames:
		return []TagKind{TagCompany, TagPlatform}
	case MediaBooks:
		return []TagKind{TagAuthor}
	default:
		return nil
	}
}
