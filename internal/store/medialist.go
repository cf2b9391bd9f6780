package store

import (
	"github.com/mylists/mylists-server/internal/domain"
)

// ListMode selects how QueryMediaList filters a list.
type ListMode int

const (
	// ListItems filters by status, genre, language and common media.
	ListItems ListMode = iota
	// ListSearch matches a free-text term against titles and credits.
	ListSearch
)

func (m ListMode) String() string {
	if m == ListSearch {
		return "search"
	}
	return "items"
}

// SortField is a sortable attribute of a list row.
type SortField int

const (
	SortTitle SortField = iota
	SortReleaseDate
	SortVoteAverage
	SortHasComment
	SortScore
	SortFeeling
)

// Order is the primary ordering of a list page. The title ascending
// tie-break is always appended after it.
type Order struct {
	Field SortField
	Desc  bool
}

// ListQuery describes one page of a user's media list.
type ListQuery struct {
	Mode      ListMode
	MediaType domain.MediaType
	OwnerID   string

	// Search mode. Term is matched case- and accent-insensitively.
	Term string

	// Items mode. StatusAll, GenreAll and LangAll disable their filter.
	Status     domain.Status
	Genre      string
	Lang       string
	ExcludeIDs []int64
	Order      Order

	Page    int // 1-indexed
	PerPage int
}

// ListRow is one list entry joined with the catalog fields shown in a list.
type ListRow struct {
	domain.ListEntry
	MediaName    string
	ImageCover   string
	EpsPerSeason []int // series and anime only
}

// ListPage is one page of a list query. Total counts every matching row.
type ListPage struct {
	Rows  []ListRow
	Total int
}

// ListAggregates are the raw per-list figures statistics are computed from.
type ListAggregates struct {
	StatusCounts   map[domain.Status]int
	Scores         []float64 // every non-null score
	Feelings       []int     // every non-null feeling
	SpecificTotal  int       // sum of progress totals (playtime for games)
	Favorites      []domain.MediaSummary
	TotalFavorites int
}
