package history

import (
	"context"
	"fmt"
	"slices"

	"github.com/asep96/OSRS-GrandExchange-App/internal/domain/apperr"
	domain "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/history"
	interfaces "github.com/asep96/OSRS-GrandExchange-App/internal/domain/interfaces"
)

// Service answers history queries straight from the upstream time-series
// feed. Nothing is cached server-side.
type Service struct {
	source interfaces.TimeseriesSource
}

func NewService(source interfaces.TimeseriesSource) *Service {
	return &Service{source: source}
}

// History validates the request, fetches the buckets and returns the derived
// points in upstream order. Invalid input is rejected before any I/O.
func (s *Service) History(ctx context.Context, itemID int64, timestep string) ([]domain.Point, domain.Timestep, error) {
	if itemID < 0 {
		return nil, "", apperr.Validation("id", "must be a non-negative integer")
	}
	step, err := domain.ParseTimestep(timestep)
	if err != nil {
		return nil, "", apperr.Validation("timestep", "allowed values are 5m, 1h, 6h, 24h")
	}

	buckets, err := s.source.FetchTimeseries(ctx, itemID, step)
	if err != nil {
		return nil, step, fmt.Errorf("fetch history for item %d: %w", itemID, err)
	}

	points := make([]domain.Point, 0, len(buckets))
	for p := range Aggregate(slices.Values(buckets)) {
		points = append(points, p)
	}
	return points, step, nil
}
