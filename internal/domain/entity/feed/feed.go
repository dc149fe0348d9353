// Package feed describes upstream documents after they have been decoded and
// coerced: every numeric field is either a valid number or null.
package feed

import (
	"github.com/guregu/null/v6"
)

// Feed names understood by the upstream prices API.
const (
	Latest     = "latest"
	Mapping    = "mapping"
	Timeseries = "timeseries"
)

// Quote is one item entry of a quote feed. The latest feed fills High, Low,
// HighTime and LowTime; the averaged feeds fill the Avg* and volume fields.
type Quote struct {
	High            null.Float
	Low             null.Float
	HighTime        null.Int
	LowTime         null.Int
	AvgHighPrice    null.Float
	AvgLowPrice     null.Float
	HighPriceVolume null.Int
	LowPriceVolume  null.Int
}

// Document is a decoded quote feed keyed by the raw item identity string.
// Keys are not validated here.
type Document struct {
	Name      string
	Items     map[string]Quote
	Timestamp null.Int
}

// MappingRecord is one entry of the catalog mapping feed.
type MappingRecord struct {
	ID       int64
	Name     string
	Members  bool
	Examine  null.String
	HighAlch null.Int
	LowAlch  null.Int
	Limit    null.Int
}
