package medialist

import (
	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// Row is one serialized list entry.
type Row struct {
	domain.ListEntry
	MediaName    string          `json:"media_name"`
	MediaCover   string          `json:"media_cover"`
	AllStatus    []domain.Status `json:"all_status"`
	EpsPerSeason []int           `json:"eps_per_season,omitempty"`
}

// MediaData is the page of a list query.
type MediaData struct {
	MediaList  []Row   `json:"media_list"`
	TotalMedia int     `json:"total_media"`
	CommonIDs  []int64 `json:"common_ids"`
}

// Pagination echoes the resolved filter and carries the vocabularies a
// client needs to render its filter controls.
type Pagination struct {
	Search     string          `json:"search"`
	Sorting    string          `json:"sorting"`
	Status     domain.Status   `json:"status"`
	Genre      string          `json:"genre"`
	Lang       string          `json:"lang"`
	Page       int             `json:"page"`
	Pages      int             `json:"pages"`
	Total      int             `json:"total"`
	AllStatus  []domain.Status `json:"all_status"`
	AllGenres  []string        `json:"all_genres"`
	AllSorting []string        `json:"all_sorting"`
}

// Result is the outcome of a list query.
type Result struct {
	MediaData  MediaData  `json:"media_data"`
	Pagination Pagination `json:"pagination"`
}

func newRows(mediaType domain.MediaType, rows []store.ListRow) []Row {
	statuses := mediaType.Statuses()
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, Row{
			ListEntry:    r.ListEntry,
			MediaName:    r.MediaName,
			MediaCover:   mediaType.CoverURL(r.ImageCover),
			AllStatus:    statuses,
			EpsPerSeason: r.EpsPerSeason,
		})
	}
	return out
}

func pageCount(total, perPage int) int {
	return (total + perPage - 1) / perPage
}
