package feed

import (
	"time"

	"github.com/google/uuid"
)

type RefreshKind string

const (
	KindLatestPrices      RefreshKind = "latest_prices"
	KindIntervalSnapshots RefreshKind = "interval_snapshots"
	KindMapping           RefreshKind = "mapping"
)

func (k RefreshKind) String() string {
	return string(k)
}

// RefreshEvent announces a committed refresh.
type RefreshEvent struct {
	ID         uuid.UUID   `json:"id"`
	Kind       RefreshKind `json:"kind"`
	Count      int         `json:"count"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
}
