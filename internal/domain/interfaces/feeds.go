package interfaces

import (
	"context"

	feed "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/feed"
	history "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/history"
)

// QuoteSource fetches upstream feeds. Implementations do not retry; every
// failure is reported as an *apperr.UpstreamError.
type QuoteSource interface {
	Fetch(ctx context.Context, name string) (*feed.Document, error)
	FetchMapping(ctx context.Context) ([]feed.MappingRecord, error)
}

type TimeseriesSource interface {
	FetchTimeseries(ctx context.Context, itemID int64, step history.Timestep) ([]history.Bucket, error)
}

// RefreshNotifier announces committed refreshes to other processes.
type RefreshNotifier interface {
	PublishRefresh(ctx context.Context, event feed.RefreshEvent) error
}
