package interfaces

import (
	"context"

	catalog "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/catalog"
)

type CatalogRepository interface {
	UpsertEntries(ctx context.Context, entries []catalog.Entry) (int, error)
	SearchByName(ctx context.Context, query string, limit int) ([]catalog.Entry, error)
	GetProfile(ctx context.Context, itemID int64) (*catalog.Profile, error)
}
