package prices

import (
	"time"

	"github.com/guregu/null/v6"
)

// ExpensiveItem is a row of the top-price ranking. The catalog side is
// left-joined, so Name and Members may be null.
type ExpensiveItem struct {
	ID        int64       `json:"id"`
	Name      null.String `json:"name"`
	PriceHigh float64     `json:"price_high"`
	PriceLow  null.Float  `json:"price_low"`
	UpdatedAt time.Time   `json:"updated_at"`
	Members   null.Bool   `json:"members"`
}

type SpreadItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Spread    float64   `json:"spread"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AlchItem is a row of the high-alchemy profit ranking.
// AlchProfit = HighAlch - (MidPrice + RuneCost).
type AlchItem struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	HighAlch   int64   `json:"highalch"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	MidPrice   float64 `json:"mid_price"`
	RuneCost   float64 `json:"rune_cost"`
	AlchProfit float64 `json:"alch_profit"`
}
