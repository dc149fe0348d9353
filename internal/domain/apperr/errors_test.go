package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassificationSurvivesWrapping(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"upstream", &UpstreamError{Feed: "5m", Status: 503, Body: "down"}, IsUpstream},
		{"validation", Validation("id", "must not be negative"), IsValidation},
		{"not found", NotFound("item", 4151), IsNotFound},
		{"store", Store("upsert latest prices", errors.New("deadlock")), IsStore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("refresh: %w", tc.err)
			if !tc.check(wrapped) {
				t.Fatalf("classification lost through wrapping: %v", wrapped)
			}
		})
	}
}

func TestUpstreamErrorUnwrapsTransportFailure(t *testing.T) {
	err := &UpstreamError{Feed: "1h", Err: context.DeadlineExceeded}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded to be reachable through %v", err)
	}
	if IsStore(err) || IsNotFound(err) {
		t.Fatalf("upstream error misclassified")
	}
}

func TestStoreNilPassthrough(t *testing.T) {
	if Store("noop", nil) != nil {
		t.Fatalf("Store(nil) must stay nil")
	}
}
