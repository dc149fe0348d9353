package prices

import (
	"context"
	"errors"

	"github.com/guregu/null/v6"
	"github.com/jackc/pgx/v5"

	"github.com/asep96/OSRS-GrandExchange-App/internal/domain/apperr"
	domain "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/prices"
	interfaces "github.com/asep96/OSRS-GrandExchange-App/internal/domain/interfaces"
	"github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/postgres"
)

var _ interfaces.PriceRepository = (*Repository)(nil)

// Repository is the latest-price cache store. It owns latest_prices and
// item_interval_snapshots and reads items only for the rankings.
type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

// Latest prices

const upsertLatestQuery = `
	INSERT INTO latest_prices (item_id, high, low, high_time, low_time, updated_at)
	VALUES ($1,$2,$3,$4,$5,now())
	ON CONFLICT (item_id) DO UPDATE SET
		high       = excluded.high,
		low        = excluded.low,
		high_time  = excluded.high_time,
		low_time   = excluded.low_time,
		updated_at = now()`

// UpsertLatest writes every row in one transaction and returns how many rows
// were committed. Null fields overwrite previously stored values.
func (r *Repository) UpsertLatest(ctx context.Context, rows []domain.Latest) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for i := range rows {
		row := &rows[i]
		batch.Queue(upsertLatestQuery,
			row.ItemID,
			row.High,
			row.Low,
			row.HighTime,
			row.LowTime,
		)
	}
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return postgres.SendBatch(ctx, tx, batch)
	})
	if err != nil {
		return 0, apperr.Store("upsert latest prices", err)
	}
	return len(rows), nil
}

func (r *Repository) GetLatest(ctx context.Context, itemID int64) (*domain.Latest, error) {
	const query = `
		SELECT item_id, high, low, high_time, low_time, updated_at
		FROM latest_prices
		WHERE item_id = $1`

	latest := &domain.Latest{}
	err := r.db.QueryRow(ctx, query, itemID).Scan(
		&latest.ItemID,
		&latest.High,
		&latest.Low,
		&latest.HighTime,
		&latest.LowTime,
		&latest.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("latest price", itemID)
		}
		return nil, apperr.Store("get latest price", err)
	}
	latest.UpdatedAt = latest.UpdatedAt.UTC()
	return latest, nil
}

// Interval snapshots

const upsertSnapshotQuery = `
	INSERT INTO item_interval_snapshots (
		item_id,
		avg_high_5m, high_volume_5m, avg_low_5m, low_volume_5m,
		avg_high_1h, high_volume_1h, avg_low_1h, low_volume_1h,
		avg_high_24h, high_volume_24h, avg_low_24h, low_volume_24h,
		updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now())
	ON CONFLICT (item_id) DO UPDATE SET
		avg_high_5m     = excluded.avg_high_5m,
		high_volume_5m  = excluded.high_volume_5m,
		avg_low_5m      = excluded.avg_low_5m,
		low_volume_5m   = excluded.low_volume_5m,
		avg_high_1h     = excluded.avg_high_1h,
		high_volume_1h  = excluded.high_volume_1h,
		avg_low_1h      = excluded.avg_low_1h,
		low_volume_1h   = excluded.low_volume_1h,
		avg_high_24h    = excluded.avg_high_24h,
		high_volume_24h = excluded.high_volume_24h,
		avg_low_24h     = excluded.avg_low_24h,
		low_volume_24h  = excluded.low_volume_24h,
		updated_at      = now()`

// UpsertSnapshots replaces all twelve window fields of each row.
func (r *Repository) UpsertSnapshots(ctx context.Context, rows []domain.IntervalSnapshot) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for i := range rows {
		batch.Queue(upsertSnapshotQuery, snapshotArgs(&rows[i])...)
	}
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return postgres.SendBatch(ctx, tx, batch)
	})
	if err != nil {
		return 0, apperr.Store("upsert interval snapshots", err)
	}
	return len(rows), nil
}

func snapshotArgs(s *domain.IntervalSnapshot) []any {
	args := make([]any, 0, 13)
	args = append(args, s.ItemID)
	for _, w := range domain.SnapshotWindows {
		q := s.Window(w)
		args = append(args, q.AvgHighPrice, q.HighPriceVolume, q.AvgLowPrice, q.LowPriceVolume)
	}
	return args
}

// Rankings

func (r *Repository) TopExpensive(ctx context.Context, limit int) ([]domain.ExpensiveItem, error) {
	const query = `
		SELECT lp.item_id, i.name, lp.high, lp.low, lp.updated_at, i.members
		FROM latest_prices AS lp
		LEFT JOIN items AS i ON i.id = lp.item_id
		WHERE lp.high IS NOT NULL
		ORDER BY lp.high DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, apperr.Store("top expensive", err)
	}
	defer rows.Close()

	items := make([]domain.ExpensiveItem, 0, limit)
	for rows.Next() {
		var item domain.ExpensiveItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.PriceHigh,
			&item.PriceLow,
			&item.UpdatedAt,
			&item.Members,
		); err != nil {
			return nil, apperr.Store("top expensive", err)
		}
		item.UpdatedAt = item.UpdatedAt.UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("top expensive", err)
	}
	return items, nil
}

func (r *Repository) TopSpread(ctx context.Context, limit int) ([]domain.SpreadItem, error) {
	const query = `
		SELECT i.id, i.name, lp.high, lp.low, (lp.high - lp.low) AS spread, lp.updated_at
		FROM latest_prices AS lp
		JOIN items AS i ON i.id = lp.item_id
		WHERE lp.high IS NOT NULL AND lp.low IS NOT NULL
		ORDER BY spread DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, apperr.Store("top spread", err)
	}
	defer rows.Close()

	items := make([]domain.SpreadItem, 0, limit)
	for rows.Next() {
		var item domain.SpreadItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.High,
			&item.Low,
			&item.Spread,
			&item.UpdatedAt,
		); err != nil {
			return nil, apperr.Store("top spread", err)
		}
		item.UpdatedAt = item.UpdatedAt.UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("top spread", err)
	}
	return items, nil
}

// HighByName returns the cached high quote of the catalog item with exactly
// this name. A missing item or a missing quote both yield null.
func (r *Repository) HighByName(ctx context.Context, name string) (null.Float, error) {
	const query = `
		SELECT lp.high
		FROM items AS i
		JOIN latest_prices AS lp ON lp.item_id = i.id
		WHERE i.name = $1
		ORDER BY i.id
		LIMIT 1`

	var high null.Float
	if err := r.db.QueryRow(ctx, query, name).Scan(&high); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return null.Float{}, nil
		}
		return null.Float{}, apperr.Store("high by name", err)
	}
	return high, nil
}

// TopAlchProfit ranks items by highalch - (mid + runeCost), keeping only
// strictly positive profits.
func (r *Repository) TopAlchProfit(ctx context.Context, runeCost float64, limit int) ([]domain.AlchItem, error) {
	const query = `
		SELECT
			i.id,
			i.name,
			i.highalch,
			lp.high,
			lp.low,
			((lp.high + lp.low) / 2.0) AS mid_price,
			$1::double precision AS rune_cost,
			i.highalch - (((lp.high + lp.low) / 2.0) + $1::double precision) AS alch_profit
		FROM items AS i
		JOIN latest_prices AS lp ON lp.item_id = i.id
		WHERE i.highalch IS NOT NULL
			AND lp.high IS NOT NULL
			AND lp.low IS NOT NULL
			AND i.highalch - (((lp.high + lp.low) / 2.0) + $1::double precision) > 0
		ORDER BY alch_profit DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, runeCost, limit)
	if err != nil {
		return nil, apperr.Store("top alch profit", err)
	}
	defer rows.Close()

	items := make([]domain.AlchItem, 0, limit)
	for rows.Next() {
		var item domain.AlchItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.HighAlch,
			&item.High,
			&item.Low,
			&item.MidPrice,
			&item.RuneCost,
			&item.AlchProfit,
		); err != nil {
			return nil, apperr.Store("top alch profit", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("top alch profit", err)
	}
	return items, nil
}
