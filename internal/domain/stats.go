package domain

// StatusCount is the number of list entries in a status.
type StatusCount struct {
	Status  Status  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// MediaSummary is a short media reference used in profile and stats views.
type MediaSummary struct {
	MediaID    int64  `json:"media_id"`
	MediaName  string `json:"media_name"`
	MediaCover string `json:"media_cover"`
}

// ListStats aggregates one user's list of one media type.
type ListStats struct {
	MediaType      MediaType      `json:"media_type"`
	TotalMedia     int            `json:"total_media"`
	NoData         bool           `json:"no_data"`
	StatusCounts   []StatusCount  `json:"status_count"`
	MetricCounts   []int          `json:"metric_count"` // one bucket per score step (0, 0.5 .. 10) or feeling (0..5)
	RatedCount     int            `json:"media_metric"`
	PercentRated   float64        `json:"percent_metric"`
	MeanMetric     float64        `json:"mean_metric"`
	SpecificTotal  int            `json:"specific_total"` // episodes, movies watched, pages, or playtime minutes
	Favorites      []MediaSummary `json:"favorites"`
	TotalFavorites int            `json:"total_favorites"`
}

// MetricBuckets returns the rating values a distribution is reported over.
func MetricBuckets(usesFeeling bool) []float64 {
	if usesFeeling {
		return []float64{0, 1, 2, 3, 4, 5}
	}
	out := make([]float64, 0, 21)
	for i := 0; i <= 20; i++ {
		out = append(out, float64(i)*0.5)
	}
	return out
}
