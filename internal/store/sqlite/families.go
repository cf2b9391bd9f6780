package sqlite

import (
	"database/sql"

	"github.com/mylists/mylists-server/internal/domain"
)

// tagTable is a searchable side table holding (media_id, name, name_folded).
type tagTable struct {
	kind  domain.TagKind
	table string
}

// tableFamily names the tables backing one media type. Families are built
// once in Open; every query resolves its tables through one.
type tableFamily struct {
	mediaType    domain.MediaType
	media        string
	list         string
	genre        string
	labels       string
	epsPerSeason string // empty unless TV
	tags         []tagTable

	// Type-specific columns of the media and list tables.
	mediaColumns    []string
	progressColumns []string
}

func newTableFamilies() map[domain.MediaType]*tableFamily {
	families := make(map[domain.MediaType]*tableFamily, len(domain.MediaTypes))
	for _, mt := range domain.MediaTypes {
		name := string(mt)
		f := &tableFamily{
			mediaType: mt,
			media:     name,
			list:      name + "_list",
			genre:     name + "_genre",
			labels:    name + "_labels",
		}
		for _, kind := range mt.SearchTags() {
			f.tags = append(f.tags, tagTable{kind: kind, table: tagTableName(mt, kind)})
		}

		switch mt {
		case domain.MediaSeries, domain.MediaAnime:
			f.epsPerSeason = name + "_episodes_per_season"
			f.mediaColumns = []string{"duration", "created_by", "total_seasons", "total_episodes"}
			f.progressColumns = []string{"current_season", "last_episode_watched"}
		case domain.MediaMovies:
			f.mediaColumns = []string{"duration", "director_name", "original_language"}
		case domain.MediaGames:
			f.progressColumns = []string{"playtime"}
		case domain.MediaBooks:
			f.mediaColumns = []string{"pages"}
			f.progressColumns = []string{"actual_page"}
		}
		families[mt] = f
	}
	return families
}

// tagTableName keeps the historical singular name of the network tables.
func tagTableName(mt domain.MediaType, kind domain.TagKind) string {
	if kind == domain.TagNetwork {
		return string(mt) + "_network"
	}
	return string(mt) + "_" + string(kind)
}

// mediaColumnDest returns a scan destination for a type-specific media
// column and the function copying the scanned value into m.
func mediaColumnDest(m *domain.Media, col string) (any, func()) {
	switch col {
	case "created_by", "director_name", "original_language":
		var ns sql.NullString
		return &ns, func() {
			switch col {
			case "created_by":
				m.CreatedBy = ns.String
			case "director_name":
				m.DirectorName = ns.String
			default:
				m.OriginalLanguage = ns.String
			}
		}
	default:
		var ni sql.NullInt64
		return &ni, func() {
			v := int(ni.Int64)
			switch col {
			case "duration":
				m.Duration = v
			case "total_seasons":
				m.TotalSeasons = v
			case "total_episodes":
				m.TotalEpisodes = v
			case "pages":
				m.Pages = v
			}
		}
	}
}

// mediaColumnValue returns the value stored in a type-specific media column.
func mediaColumnValue(m *domain.Media, col string) any {
	switch col {
	case "duration":
		return m.Duration
	case "created_by":
		return nullString(m.CreatedBy)
	case "total_seasons":
		return m.TotalSeasons
	case "total_episodes":
		return m.TotalEpisodes
	case "director_name":
		return nullString(m.DirectorName)
	case "original_language":
		return nullString(m.OriginalLanguage)
	case "pages":
		return m.Pages
	default:
		return nil
	}
}

// progressField returns the entry field stored in a progress column.
func progressField(e *domain.ListEntry, col string) *int {
	switch col {
	case "current_season":
		return &e.CurrentSeason
	case "last_episode_watched":
		return &e.LastEpisodeWatched
	case "actual_page":
		return &e.ActualPage
	case "playtime":
		return &e.Playtime
	default:
		return nil
	}
}
