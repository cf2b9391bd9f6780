package medialist

import (
	"strings"

	"github.com/mylists/mylists-server/internal/domain"
	domainerrors "github.com/mylists/mylists-server/internal/errors"
	"github.com/mylists/mylists-server/internal/store"
)

// Validation messages returned to clients.
const (
	msgUnknownStatus  = "This status does not exist."
	msgUnknownSorting = "This sorting is not defined."
	msgInvalidPage    = "This page does not exist."
	msgMissingSearch  = "A search term is required."
)

// Params are the raw list query parameters of a request. Empty strings take
// their defaults.
type Params struct {
	Search     string
	Sorting    string
	Status     string
	Genre      string
	Lang       string
	ShowCommon string
	Page       int
}

// Vocabulary holds the values a list of one media type can be filtered and
// sorted by. It is returned with every page.
type Vocabulary struct {
	Statuses []domain.Status
	Genres   []string
	Sorting  *SortingTable
}

// NewVocabulary builds the vocabulary of a media type for a list owner.
func NewVocabulary(mediaType domain.MediaType, usesFeeling bool) Vocabulary {
	return Vocabulary{
		Statuses: mediaType.StatusChoices(),
		Genres:   mediaType.Genres(),
		Sorting:  NewSortingTable(mediaType, usesFeeling),
	}
}

func (v Vocabulary) hasStatus(s domain.Status) bool {
	if s == domain.StatusSearch {
		return true
	}
	for _, st := range v.Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// Filter is a validated list query.
type Filter struct {
	Mode       store.ListMode
	Search     string
	Sorting    string
	Order      store.Order
	Status     domain.Status
	Genre      string
	Lang       string
	ShowCommon bool
	Page       int
}

// ResolveFilter validates request parameters against the vocabulary of a
// media type. Unknown statuses, unknown sort keys and pages below 1 are
// rejected; genre and language are passed through unchecked.
func ResolveFilter(mediaType domain.MediaType, p Params, v Vocabulary) (*Filter, error) {
	f := &Filter{
		Search:     strings.TrimSpace(p.Search),
		Sorting:    p.Sorting,
		Status:     domain.Status(p.Status),
		Genre:      p.Genre,
		Lang:       p.Lang,
		ShowCommon: p.ShowCommon != "false",
		Page:       p.Page,
	}

	if f.Status == "" {
		f.Status = mediaType.DefaultStatus()
	}
	if !v.hasStatus(f.Status) {
		return nil, invalidParam("status", msgUnknownStatus)
	}

	if f.Sorting == "" {
		f.Sorting = DefaultSorting
	}
	order, ok := v.Sorting.Lookup(f.Sorting)
	if !ok {
		return nil, invalidParam("sorting", msgUnknownSorting)
	}
	f.Order = order

	if f.Genre == "" {
		f.Genre = domain.GenreAll
	}
	if f.Lang == "" {
		f.Lang = domain.LangAll
	}

	if f.Page < 1 {
		return nil, invalidParam("page", msgInvalidPage)
	}

	if f.Status == domain.StatusSearch {
		if f.Search == "" {
			return nil, invalidParam("search", msgMissingSearch)
		}
		f.Mode = store.ListSearch
	}

	return f, nil
}

func invalidParam(param, msg string) error {
	return domainerrors.ValidationWithDetails(msg, map[string]string{param: msg})
}
