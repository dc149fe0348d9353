package history

import (
	"iter"
	"math"

	"github.com/guregu/null/v6"

	domain "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/history"
)

// Aggregate derives one Point per bucket, lazily and in input order. The
// sequence is single-use when buckets is.
func Aggregate(buckets iter.Seq[domain.Bucket]) iter.Seq[domain.Point] {
	return func(yield func(domain.Point) bool) {
		for b := range buckets {
			if !yield(Derive(b)) {
				return
			}
		}
	}
}

// Derive computes the midpoint, total volume and volume-weighted average of a
// single bucket.
//
// The VWAP treats a missing side's price as zero value and is only attempted
// when both volumes are present and sum to a positive number. Otherwise, or if
// the result is not finite, it falls back to the rounded midpoint.
func Derive(b domain.Bucket) domain.Point {
	p := domain.Point{
		AvgHigh:    b.AvgHighPrice,
		AvgLow:     b.AvgLowPrice,
		HighVolume: b.HighPriceVolume,
		LowVolume:  b.LowPriceVolume,
	}
	if b.Timestamp.Valid {
		p.TS = toInt(b.Timestamp.Float64 * 1000)
	}

	if b.AvgHighPrice.Valid && b.AvgLowPrice.Valid {
		if mid := (b.AvgHighPrice.Float64 + b.AvgLowPrice.Float64) / 2; isFinite(mid) {
			p.Mid = null.FloatFrom(mid)
		}
	}

	if b.HighPriceVolume.Valid && b.LowPriceVolume.Valid {
		total := b.HighPriceVolume.Float64 + b.LowPriceVolume.Float64
		if total > 0 && isFinite(total) {
			p.TotalVolume = null.FloatFrom(total)

			weighted := b.AvgHighPrice.ValueOrZero()*b.HighPriceVolume.Float64 +
				b.AvgLowPrice.ValueOrZero()*b.LowPriceVolume.Float64
			p.VWAP = roundInt(weighted / total)
		}
	}

	if !p.VWAP.Valid && p.Mid.Valid {
		p.VWAP = roundInt(p.Mid.Float64)
	}
	return p
}

// roundInt rounds half away from zero; values that are not finite or do not
// fit an int64 become null.
func roundInt(f float64) null.Int {
	return toInt(math.Round(f))
}

// toInt truncates f toward zero; values that are not finite or do not fit an
// int64 become null.
func toInt(f float64) null.Int {
	if !isFinite(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return null.Int{}
	}
	return null.IntFrom(int64(f))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
