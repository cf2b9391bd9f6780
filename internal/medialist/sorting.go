package medialist

import (
	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// DefaultSorting is the sort key used when a request names none.
const DefaultSorting = "Title A-Z"

// SortKey names one ordering offered to clients.
type SortKey struct {
	Name  string
	Order store.Order
}

// SortingTable is the ordered set of sort keys of one media type.
type SortingTable struct {
	keys []SortKey
}

// NewSortingTable builds the sort keys of a media type. The score keys order
// by feeling when the list owner rates with feelings.
func NewSortingTable(mediaType domain.MediaType, usesFeeling bool) *SortingTable {
	metric := store.SortScore
	if usesFeeling {
		metric = store.SortFeeling
	}
	rating := RatingLabel(mediaType)

	return &SortingTable{keys: []SortKey{
		{"Title A-Z", store.Order{Field: store.SortTitle}},
		{"Title Z-A", store.Order{Field: store.SortTitle, Desc: true}},
		{"Release Date +", store.Order{Field: store.SortReleaseDate, Desc: true}},
		{"Release Date -", store.Order{Field: store.SortReleaseDate}},
		{rating + " +", store.Order{Field: store.SortVoteAverage, Desc: true}},
		{rating + " -", store.Order{Field: store.SortVoteAverage}},
		{"Comments", store.Order{Field: store.SortHasComment, Desc: true}},
		{"Score +", store.Order{Field: metric, Desc: true}},
		{"Score -", store.Order{Field: metric}},
	}}
}

// RatingLabel names the external rating of a media type.
func RatingLabel(mediaType domain.MediaType) string {
	switch mediaType {
	case domain.MediaGames:
		return "Score IGDB"
	case domain.MediaBooks:
		return "Rating"
	default:
		return "Score TMDB"
	}
}

// Lookup returns the ordering of a sort key.
func (t *SortingTable) Lookup(name string) (store.Order, bool) {
	for _, k := range t.keys {
		if k.Name == name {
			return k.Order, true
		}
	}
	return store.Order{}, false
}

// Names returns the sort key names in display order.
func (t *SortingTable) Names() []string {
	names := make([]string, len(t.keys))
	for i, k := range t.keys {
		names[i] = k.Name
	}
	return names
}
