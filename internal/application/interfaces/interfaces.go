// Package interfaces declares what the route layer needs from the
// application services.
package interfaces

import (
	"context"
	"net/http"

	historyservice "github.com/asep96/OSRS-GrandExchange-App/internal/application/service/history"
	"github.com/asep96/OSRS-GrandExchange-App/internal/application/service/ingest"
	"github.com/asep96/OSRS-GrandExchange-App/internal/application/service/market"
	catalog "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/catalog"
	history "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/history"
	prices "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/prices"
)

type HTTPHandler interface {
	http.Handler
}

// MarketReader serves the cached read paths.
type MarketReader interface {
	Search(ctx context.Context, query string) ([]catalog.Entry, string, error)
	LatestPrice(ctx context.Context, itemID int64) (*market.LatestQuote, error)
	Profile(ctx context.Context, itemID int64) (*catalog.Profile, error)
	TopExpensive(ctx context.Context) ([]prices.ExpensiveItem, error)
	TopSpread(ctx context.Context) ([]prices.SpreadItem, error)
	TopAlchProfit(ctx context.Context) ([]prices.AlchItem, error)
}

// HistoryReader serves uncached time-series queries.
type HistoryReader interface {
	History(ctx context.Context, itemID int64, timestep string) ([]history.Point, history.Timestep, error)
}

// Refresher runs the write paths.
type Refresher interface {
	RefreshLatestPrices(ctx context.Context) (int, error)
	RefreshIntervalSnapshots(ctx context.Context) (int, error)
	RefreshMapping(ctx context.Context) (int, error)
	RefreshMarket(ctx context.Context) (ingest.MarketRefresh, error)
}

var (
	_ MarketReader  = (*market.Service)(nil)
	_ HistoryReader = (*historyservice.Service)(nil)
	_ Refresher     = (*ingest.Service)(nil)
)
