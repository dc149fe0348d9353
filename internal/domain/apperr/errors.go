// Package apperr holds the error classes shared by the ingestion and read paths.
// Callers classify failures with errors.As or the Is* helpers rather than by
// comparing messages.
package apperr

import (
	"errors"
	"fmt"
)

// UpstreamError reports a failed feed fetch: a transport failure, a non-2xx
// status or a body that could not be decoded.
type UpstreamError struct {
	Feed   string
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("upstream feed %s: status %d: %s", e.Feed, e.Status, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("upstream feed %s: %v", e.Feed, e.Err)
	default:
		return fmt.Sprintf("upstream feed %s: request failed", e.Feed)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidationError rejects caller input before any I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is the expected outcome of a lookup for an identity that has no
// stored record yet.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// StoreError wraps a persistence failure. A StoreError returned from a bulk
// upsert means the transaction was rolled back.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func NotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsStore(err error) bool {
	var target *StoreError
	return errors.As(err, &target)
}
