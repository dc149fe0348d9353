package history

import (
	"context"
	"testing"

	"github.com/guregu/null/v6"

	"github.com/asep96/OSRS-GrandExchange-App/internal/domain/apperr"
	domain "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/history"
)

type fakeTimeseries struct {
	calls   int
	gotID   int64
	gotStep domain.Timestep
	buckets []domain.Bucket
	err     error
}

func (f *fakeTimeseries) FetchTimeseries(_ context.Context, itemID int64, step domain.Timestep) ([]domain.Bucket, error) {
	f.calls++
	f.gotID = itemID
	f.gotStep = step
	return f.buckets, f.err
}

func TestHistory(t *testing.T) {
	source := &fakeTimeseries{buckets: []domain.Bucket{
		{Timestamp: null.FloatFrom(1700000000), AvgHighPrice: null.FloatFrom(1000), AvgLowPrice: null.FloatFrom(900)},
		{Timestamp: null.FloatFrom(1700003600)},
	}}
	svc := NewService(source)

	points, step, err := svc.History(context.Background(), 2, "1H")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if step != domain.Timestep1h || source.gotStep != domain.Timestep1h || source.gotID != 2 {
		t.Fatalf("unexpected request id=%d step=%s", source.gotID, source.gotStep)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].VWAP.Int64 != 950 || points[0].TS.Int64 != 1700000000000 {
		t.Fatalf("unexpected first point %+v", points[0])
	}
	if points[1].Mid.Valid || points[1].VWAP.Valid {
		t.Fatalf("empty bucket must derive nulls: %+v", points[1])
	}
}

func TestHistoryRejectsBeforeIO(t *testing.T) {
	cases := []struct {
		name     string
		id       int64
		timestep string
	}{
		{"negative id", -1, "5m"},
		{"unknown timestep", 2, "2h"},
		{"empty timestep", 2, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			source := &fakeTimeseries{}
			svc := NewService(source)

			_, _, err := svc.History(context.Background(), tc.id, tc.timestep)
			if !apperr.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if source.calls != 0 {
				t.Fatalf("upstream must not be called for invalid input")
			}
		})
	}
}

func TestHistoryUpstreamFailure(t *testing.T) {
	source := &fakeTimeseries{err: &apperr.UpstreamError{Feed: "timeseries", Status: 500}}
	svc := NewService(source)

	_, _, err := svc.History(context.Background(), 2, "5m")
	if !apperr.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
