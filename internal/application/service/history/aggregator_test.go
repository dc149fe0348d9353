package history

import (
	"math"
	"slices"
	"testing"

	"github.com/guregu/null/v6"

	domain "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/history"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name      string
		bucket    domain.Bucket
		wantMid   null.Float
		wantTotal null.Float
		wantVWAP  null.Int
	}{
		{
			name: "zero low volume still weights",
			bucket: domain.Bucket{
				AvgHighPrice:    null.FloatFrom(1000),
				HighPriceVolume: null.FloatFrom(100),
				AvgLowPrice:     null.FloatFrom(900),
				LowPriceVolume:  null.FloatFrom(0),
			},
			wantMid:   null.FloatFrom(950),
			wantTotal: null.FloatFrom(100),
			wantVWAP:  null.IntFrom(1000),
		},
		{
			name: "missing volumes fall back to mid",
			bucket: domain.Bucket{
				AvgHighPrice: null.FloatFrom(1000),
				AvgLowPrice:  null.FloatFrom(900),
			},
			wantMid:  null.FloatFrom(950),
			wantVWAP: null.IntFrom(950),
		},
		{
			name:   "everything missing",
			bucket: domain.Bucket{},
		},
		{
			name: "zero total volume is not tradable volume",
			bucket: domain.Bucket{
				AvgHighPrice:    null.FloatFrom(1001),
				HighPriceVolume: null.FloatFrom(0),
				AvgLowPrice:     null.FloatFrom(900),
				LowPriceVolume:  null.FloatFrom(0),
			},
			wantMid:  null.FloatFrom(950.5),
			wantVWAP: null.IntFrom(951),
		},
		{
			name: "missing side price counts as zero",
			bucket: domain.Bucket{
				AvgHighPrice:    null.FloatFrom(1000),
				HighPriceVolume: null.FloatFrom(30),
				LowPriceVolume:  null.FloatFrom(10),
			},
			wantTotal: null.FloatFrom(40),
			wantVWAP:  null.IntFrom(750),
		},
		{
			name: "weighted average",
			bucket: domain.Bucket{
				AvgHighPrice:    null.FloatFrom(110),
				HighPriceVolume: null.FloatFrom(3),
				AvgLowPrice:     null.FloatFrom(100),
				LowPriceVolume:  null.FloatFrom(1),
			},
			wantMid:   null.FloatFrom(105),
			wantTotal: null.FloatFrom(4),
			wantVWAP:  null.IntFrom(108),
		},
		{
			name: "non-finite arithmetic yields nulls",
			bucket: domain.Bucket{
				AvgHighPrice:    null.FloatFrom(math.MaxFloat64),
				HighPriceVolume: null.FloatFrom(10),
				AvgLowPrice:     null.FloatFrom(math.MaxFloat64),
				LowPriceVolume:  null.FloatFrom(10),
			},
			wantTotal: null.FloatFrom(20),
		},
		{
			name: "non-finite weighted value falls back to mid",
			bucket: domain.Bucket{
				AvgHighPrice:    null.FloatFrom(1e300),
				HighPriceVolume: null.FloatFrom(1e10),
				AvgLowPrice:     null.FloatFrom(-1e300),
				LowPriceVolume:  null.FloatFrom(1e10),
			},
			wantMid:   null.FloatFrom(0),
			wantTotal: null.FloatFrom(2e10),
			wantVWAP:  null.IntFrom(0),
		},
		{
			name: "only one volume present",
			bucket: domain.Bucket{
				AvgHighPrice:    null.FloatFrom(10),
				HighPriceVolume: null.FloatFrom(5),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Derive(tc.bucket)
			if p.Mid != tc.wantMid {
				t.Fatalf("mid: got %+v want %+v", p.Mid, tc.wantMid)
			}
			if p.TotalVolume != tc.wantTotal {
				t.Fatalf("totalVolume: got %+v want %+v", p.TotalVolume, tc.wantTotal)
			}
			if p.VWAP != tc.wantVWAP {
				t.Fatalf("vwap: got %+v want %+v", p.VWAP, tc.wantVWAP)
			}
		})
	}
}

func TestDeriveTimestamp(t *testing.T) {
	p := Derive(domain.Bucket{Timestamp: null.FloatFrom(1700000000)})
	if !p.TS.Valid || p.TS.Int64 != 1700000000000 {
		t.Fatalf("expected millisecond timestamp, got %+v", p.TS)
	}
	if p := Derive(domain.Bucket{}); p.TS.Valid {
		t.Fatalf("missing timestamp must stay null")
	}
}

func TestDeriveTimestampOutOfRange(t *testing.T) {
	for _, ts := range []float64{1e19, -1e19, math.MaxFloat64} {
		if p := Derive(domain.Bucket{Timestamp: null.FloatFrom(ts)}); p.TS.Valid {
			t.Fatalf("timestamp %g must become null, got %d", ts, p.TS.Int64)
		}
	}
}

func TestAggregatePreservesOrderAndDuplicates(t *testing.T) {
	buckets := []domain.Bucket{
		{Timestamp: null.FloatFrom(300)},
		{Timestamp: null.FloatFrom(100)},
		{Timestamp: null.FloatFrom(100)},
	}

	var got []int64
	for p := range Aggregate(slices.Values(buckets)) {
		got = append(got, p.TS.Int64)
	}
	want := []int64{300000, 100000, 100000}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAggregateIsLazy(t *testing.T) {
	pulled := 0
	source := func(yield func(domain.Bucket) bool) {
		for i := range 10 {
			pulled++
			if !yield(domain.Bucket{Timestamp: null.FloatFrom(float64(i))}) {
				return
			}
		}
	}

	for p := range Aggregate(source) {
		if p.TS.Int64 == 1000 {
			break
		}
	}
	if pulled != 2 {
		t.Fatalf("expected 2 buckets pulled, got %d", pulled)
	}
}
