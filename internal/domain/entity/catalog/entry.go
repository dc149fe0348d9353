package catalog

import (
	"time"

	"github.com/guregu/null/v6"

	"github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/prices"
)

// Entry is the static metadata of one tradeable item, replaced wholesale on
// every mapping refresh that includes it.
type Entry struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Members   bool        `json:"members"`
	Examine   null.String `json:"examine"`
	HighAlch  null.Int    `json:"highalch"`
	LowAlch   null.Int    `json:"lowalch"`
	Limit     null.Int    `json:"itemLimit"`
	UpdatedAt time.Time   `json:"updatedAt,omitzero"`
}

// Profile joins an Entry with whatever price data exists for it. Missing
// price or snapshot rows leave the corresponding fields null.
type Profile struct {
	Entry
	High           null.Float         `json:"high"`
	Low            null.Float         `json:"low"`
	HighTime       null.Int           `json:"highTime"`
	LowTime        null.Int           `json:"lowTime"`
	PriceUpdatedAt null.Time          `json:"priceUpdatedAt"`
	FiveMin        prices.WindowQuote `json:"fiveMinute"`
	OneHour        prices.WindowQuote `json:"oneHour"`
	OneDay         prices.WindowQuote `json:"oneDay"`
	SnapshotAt     null.Time          `json:"snapshotUpdatedAt"`
}
