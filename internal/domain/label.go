package domain

// Label is a user-defined named group of media inside one list.
type Label struct {
	Name       string `json:"name"`
	MediaCount int    `json:"media_count"`
}

// MaxLabelLength bounds label names.
const MaxLabelLength = 64
