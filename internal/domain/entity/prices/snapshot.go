package prices

import (
	"fmt"
	"time"

	"github.com/guregu/null/v6"
)

// Window names one of the averaged upstream feeds.
type Window string

const (
	Window5m  Window = "5m"
	Window1h  Window = "1h"
	Window24h Window = "24h"
)

// SnapshotWindows lists the windows an IntervalSnapshot carries, in column order.
var SnapshotWindows = []Window{Window5m, Window1h, Window24h}

func (w Window) String() string {
	return string(w)
}

func (w Window) IsValid() bool {
	switch w {
	case Window5m, Window1h, Window24h:
		return true
	default:
		return false
	}
}

func NewWindow(s string) (Window, error) {
	w := Window(s)
	if !w.IsValid() {
		return "", fmt.Errorf("invalid window: %s", s)
	}
	return w, nil
}

// WindowQuote is the averaged two-sided quote of one window.
type WindowQuote struct {
	AvgHighPrice    null.Float `json:"avgHighPrice"`
	HighPriceVolume null.Int   `json:"highPriceVolume"`
	AvgLowPrice     null.Float `json:"avgLowPrice"`
	LowPriceVolume  null.Int   `json:"lowPriceVolume"`
}

// IntervalSnapshot carries all three windows for one item. It is always
// written whole: a window missing from its feed is stored as nulls.
type IntervalSnapshot struct {
	ItemID    int64       `json:"id"`
	FiveMin   WindowQuote `json:"fiveMinute"`
	OneHour   WindowQuote `json:"oneHour"`
	OneDay    WindowQuote `json:"oneDay"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Window returns the quote slot for w, or nil for an unknown window.
func (s *IntervalSnapshot) Window(w Window) *WindowQuote {
	switch w {
	case Window5m:
		return &s.FiveMin
	case Window1h:
		return &s.OneHour
	case Window24h:
		return &s.OneDay
	default:
		return nil
	}
}
