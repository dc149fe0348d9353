package history

import (
	"fmt"
	"strings"

	"github.com/guregu/null/v6"
)

// Timestep is the bucket width of the upstream time-series feed.
type Timestep string

const (
	Timestep5m  Timestep = "5m"
	Timestep1h  Timestep = "1h"
	Timestep6h  Timestep = "6h"
	Timestep24h Timestep = "24h"
)

func (t Timestep) String() string {
	return string(t)
}

func (t Timestep) IsValid() bool {
	switch t {
	case Timestep5m, Timestep1h, Timestep6h, Timestep24h:
		return true
	default:
		return false
	}
}

// ParseTimestep accepts any letter case.
func ParseTimestep(s string) (Timestep, error) {
	t := Timestep(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid timestep %q: allowed values are 5m, 1h, 6h, 24h", s)
	}
	return t, nil
}

// Bucket is one raw time-series entry as delivered upstream. Timestamp is in
// seconds; every field is null when the upstream value was missing or not a
// number.
type Bucket struct {
	Timestamp       null.Float
	AvgHighPrice    null.Float
	AvgLowPrice     null.Float
	HighPriceVolume null.Float
	LowPriceVolume  null.Float
}

// Point is the derived view of one Bucket. TS is in milliseconds.
type Point struct {
	TS          null.Int   `json:"ts"`
	AvgHigh     null.Float `json:"avgHigh"`
	AvgLow      null.Float `json:"avgLow"`
	Mid         null.Float `json:"mid"`
	HighVolume  null.Float `json:"highVolume"`
	LowVolume   null.Float `json:"lowVolume"`
	TotalVolume null.Float `json:"totalVolume"`
	VWAP        null.Int   `json:"vwap"`
}
