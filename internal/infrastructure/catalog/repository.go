package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/asep96/OSRS-GrandExchange-App/internal/domain/apperr"
	domain "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/catalog"
	prices "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/prices"
	interfaces "github.com/asep96/OSRS-GrandExchange-App/internal/domain/interfaces"
	"github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/postgres"
)

var _ interfaces.CatalogRepository = (*Repository)(nil)

// Repository is the catalog store. It owns the items table.
type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

const upsertEntryQuery = `
	INSERT INTO items (id, name, members, examine, highalch, lowalch, item_limit, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,now())
	ON CONFLICT (id) DO UPDATE SET
		name       = excluded.name,
		members    = excluded.members,
		examine    = excluded.examine,
		highalch   = excluded.highalch,
		lowalch    = excluded.lowalch,
		item_limit = excluded.item_limit,
		updated_at = now()`

// UpsertEntries replaces every listed entry wholesale inside one transaction.
func (r *Repository) UpsertEntries(ctx context.Context, entries []domain.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for i := range entries {
		e := &entries[i]
		batch.Queue(upsertEntryQuery,
			e.ID,
			e.Name,
			e.Members,
			e.Examine,
			e.HighAlch,
			e.LowAlch,
			e.Limit,
		)
	}
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return postgres.SendBatch(ctx, tx, batch)
	})
	if err != nil {
		return 0, apperr.Store("upsert catalog entries", err)
	}
	return len(entries), nil
}

// SearchByName does a case-insensitive substring match ordered by the byte
// order of the name. The query must already be sanitized; it is bound as a
// parameter, never interpolated.
func (r *Repository) SearchByName(ctx context.Context, query string, limit int) ([]domain.Entry, error) {
	const sql = `
		SELECT id, name, members, examine, highalch, lowalch, item_limit, updated_at
		FROM items
		WHERE name ILIKE $1
		ORDER BY name COLLATE "C"
		LIMIT $2`

	rows, err := r.db.Query(ctx, sql, "%"+query+"%", limit)
	if err != nil {
		return nil, apperr.Store("search catalog", err)
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0)
	for rows.Next() {
		var e domain.Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, apperr.Store("search catalog", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("search catalog", err)
	}
	return entries, nil
}

// GetProfile joins the entry with its latest price and interval snapshot.
// Both price tables are keyed by the item's own id.
func (r *Repository) GetProfile(ctx context.Context, itemID int64) (*domain.Profile, error) {
	const sql = `
		SELECT
			i.id, i.name, i.members, i.examine, i.highalch, i.lowalch, i.item_limit, i.updated_at,
			lp.high, lp.low, lp.high_time, lp.low_time, lp.updated_at,
			s.avg_high_5m, s.high_volume_5m, s.avg_low_5m, s.low_volume_5m,
			s.avg_high_1h, s.high_volume_1h, s.avg_low_1h, s.low_volume_1h,
			s.avg_high_24h, s.high_volume_24h, s.avg_low_24h, s.low_volume_24h,
			s.updated_at
		FROM items AS i
		LEFT JOIN latest_prices AS lp ON lp.item_id = i.id
		LEFT JOIN item_interval_snapshots AS s ON s.item_id = i.id
		WHERE i.id = $1`

	p := &domain.Profile{}
	dest := []any{
		&p.ID, &p.Name, &p.Members, &p.Examine, &p.HighAlch, &p.LowAlch, &p.Limit, &p.UpdatedAt,
		&p.High, &p.Low, &p.HighTime, &p.LowTime, &p.PriceUpdatedAt,
	}
	dest = append(dest, windowDest(&p.FiveMin)...)
	dest = append(dest, windowDest(&p.OneHour)...)
	dest = append(dest, windowDest(&p.OneDay)...)
	dest = append(dest, &p.SnapshotAt)

	if err := r.db.QueryRow(ctx, sql, itemID).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("item", itemID)
		}
		return nil, apperr.Store("get item profile", err)
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	p.PriceUpdatedAt.Time = p.PriceUpdatedAt.Time.UTC()
	p.SnapshotAt.Time = p.SnapshotAt.Time.UTC()
	return p, nil
}

func windowDest(q *prices.WindowQuote) []any {
	return []any{&q.AvgHighPrice, &q.HighPriceVolume, &q.AvgLowPrice, &q.LowPriceVolume}
}

func scanEntry(row pgx.Row, e *domain.Entry) error {
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Members,
		&e.Examine,
		&e.HighAlch,
		&e.LowAlch,
		&e.Limit,
		&e.UpdatedAt,
	); err != nil {
		return err
	}
	e.UpdatedAt = e.UpdatedAt.UTC()
	return nil
}
