package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// StatsService computes list statistics.
type StatsService struct {
	store  store.Store
	logger *slog.Logger
}

// NewStatsService creates a new statistics service.
func NewStatsService(store store.Store, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// ListStats aggregates owner's list of mediaType. Ratings are read as
// feelings or scores depending on the owner's preference.
func (s *StatsService) ListStats(ctx context.Context, owner *domain.User, mediaType domain.MediaType) (*domain.ListStats, error) {
	agg, err := s.store.ListAggregates(ctx, mediaType, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list aggregates: %w", err)
	}
	return buildListStats(mediaType, owner.AddFeeling, agg), nil
}

func buildListStats(mediaType domain.MediaType, usesFeeling bool, agg *store.ListAggregates) *domain.ListStats {
	stats := &domain.ListStats{
		MediaType:      mediaType,
		SpecificTotal:  agg.SpecificTotal,
		Favorites:      agg.Favorites,
		TotalFavorites: agg.TotalFavorites,
	}
	if stats.Favorites == nil {
		stats.Favorites = []domain.MediaSummary{}
	}

	for _, n := range agg.StatusCounts {
		stats.TotalMedia += n
	}
	stats.NoData = stats.TotalMedia == 0

	for _, st := range mediaType.Statuses() {
		n := agg.StatusCounts[st]
		stats.StatusCounts = append(stats.StatusCounts, domain.StatusCount{
			Status:  st,
			Count:   n,
			Percent: percent(n, stats.TotalMedia),
		})
	}

	var values []float64
	if usesFeeling {
		for _, f := range agg.Feelings {
			values = append(values, float64(f))
		}
	} else {
		values = agg.Scores
	}

	buckets := domain.MetricBuckets(usesFeeling)
	stats.MetricCounts = make([]int, len(buckets))
	step := 1.0
	if !usesFeeling {
		step = 0.5
	}

	var sum float64
	for _, v := range values {
		i := int(math.Round(v / step))
		if i >= 0 && i < len(buckets) {
			stats.MetricCounts[i]++
		}
		sum += v
	}

	stats.RatedCount = len(values)
	stats.PercentRated = percent(len(values), stats.TotalMedia)
	if len(values) > 0 {
		stats.MeanMetric = round2(sum / float64(len(values)))
	}

	return stats
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) * 100 / float64(total))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
