package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderRefresh(t *testing.T) {
	r := New()

	r.RefreshCompleted("mapping", 4012)
	r.RefreshCompleted("mapping", 4013)
	r.RefreshFailed("mapping")

	if got := testutil.ToFloat64(r.RefreshTotal.WithLabelValues("mapping", "success")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(r.RefreshTotal.WithLabelValues("mapping", "failure")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
	if got := testutil.ToFloat64(r.RefreshRows.WithLabelValues("mapping")); got != 4013 {
		t.Fatalf("expected last row count 4013, got %v", got)
	}
}

func TestRecorderFetch(t *testing.T) {
	r := New()

	r.FetchObserved("latest", 120*time.Millisecond, nil)
	r.FetchObserved("latest", 2*time.Second, errors.New("timeout"))

	if got := testutil.CollectAndCount(r.FetchDuration); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}
	if got := testutil.ToFloat64(r.FetchErrors.WithLabelValues("latest")); got != 1 {
		t.Fatalf("expected 1 fetch error, got %v", got)
	}
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := New().Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := New().Register(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
