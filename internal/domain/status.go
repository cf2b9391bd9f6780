package domain

// Status is the state of a media inside a user's list.
type Status string

const (
	StatusWatching    Status = "Watching"
	StatusReading     Status = "Reading"
	StatusPlaying     Status = "Playing"
	StatusCompleted   Status = "Completed"
	StatusMultiplayer Status = "Multiplayer"
	StatusOnHold      Status = "On Hold"
	StatusEndless     Status = "Endless"
	StatusRandom      Status = "Random"
	StatusDropped     Status = "Dropped"
	StatusPlanToWatch Status = "Plan to Watch"
	StatusPlanToRead  Status = "Plan to Read"
	StatusPlanToPlay  Status = "Plan to Play"
)

// Pseudo-statuses accepted by the list query. They select views of the
// list rather than a stored status value.
const (
	StatusAll      Status = "All"
	StatusSearch   Status = "Search"
	StatusFavorite Status = "Favorite"
	StatusStats    Status = "Stats"
	StatusLabels   Status = "Labels"
)

var statusesByType = map[MediaType][]Status{
	MediaSeries: {StatusWatching, StatusCompleted, StatusOnHold, StatusRandom, StatusDropped, StatusPlanToWatch},
	MediaAnime:  {StatusWatching, StatusCompleted, StatusOnHold, StatusRandom, StatusDropped, StatusPlanToWatch},
	MediaMovies: {StatusCompleted, StatusPlanToWatch},
	MediaGames:  {StatusPlaying, StatusCompleted, StatusMultiplayer, StatusEndless, StatusDropped, StatusPlanToPlay},
	MediaBooks:  {StatusReading, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToRead},
}

// Statuses returns the storable statuses of a media type in display order.
func (mt MediaType) Statuses() []Status {
	src := statusesByType[mt]
	out := make([]Status, len(src))
	copy(out, src)
	return out
}

// StatusChoices returns the statuses offered to clients when browsing a list:
// All, the storable statuses, then Favorite, Stats and Labels.
func (mt MediaType) StatusChoices() []Status {
	src := statusesByType[mt]
	out := make([]Status, 0, len(src)+4)
	out = append(out, StatusAll)
	out = append(out, src...)
	return append(out, StatusFavorite, StatusStats, StatusLabels)
}

// HasStatus reports whether s can be stored in a list of this type.
func (mt MediaType) HasStatus(s Status) bool {
	for _, st := range statusesByType[mt] {
		if st == s {
			return true
		}
	}
	return false
}

// DefaultStatus is the status shown when a list is opened without one, and
// the status given to a media added without one.
func (mt MediaType) DefaultStatus() Status {
	switch mt {
	case MediaSeries, MediaAnime:
		return StatusWatching
	default:
		return StatusCompleted
	}
}

// IsPlanned reports whether the status marks a media not yet started.
func (s Status) IsPlanned() bool {
	return s == StatusPlanToWatch || s == StatusPlanToRead || s == StatusPlanToPlay
}
