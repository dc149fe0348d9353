package interfaces

import (
	"context"

	"github.com/guregu/null/v6"

	prices "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/prices"
)

// PriceRepository owns the latest_prices and item_interval_snapshots tables.
// Upserts are all-or-nothing and stamp UpdatedAt with the store clock.
type PriceRepository interface {
	UpsertLatest(ctx context.Context, rows []prices.Latest) (int, error)
	GetLatest(ctx context.Context, itemID int64) (*prices.Latest, error)
	UpsertSnapshots(ctx context.Context, rows []prices.IntervalSnapshot) (int, error)

	TopExpensive(ctx context.Context, limit int) ([]prices.ExpensiveItem, error)
	TopSpread(ctx context.Context, limit int) ([]prices.SpreadItem, error)
	HighByName(ctx context.Context, name string) (null.Float, error)
	TopAlchProfit(ctx context.Context, runeCost float64, limit int) ([]prices.AlchItem, error)
}
