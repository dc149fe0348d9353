package prices

import (
	"time"

	"github.com/guregu/null/v6"
)

// Latest is the cached most recent quote for one item. HighTime and LowTime are
// provenance of the upstream quote (unix seconds); UpdatedAt is assigned by the
// store at commit and is the only field freshness is computed from.
type Latest struct {
	ItemID    int64      `json:"id"`
	High      null.Float `json:"high"`
	Low       null.Float `json:"low"`
	HighTime  null.Int   `json:"highTime"`
	LowTime   null.Int   `json:"lowTime"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// IsFresh reports whether lastUpdated is younger than maxAge at now. Both
// instants are compared in UTC; a zero lastUpdated is never fresh.
func IsFresh(lastUpdated time.Time, maxAge time.Duration, now time.Time) bool {
	if lastUpdated.IsZero() {
		return false
	}
	return now.UTC().Sub(lastUpdated.UTC()) < maxAge
}
