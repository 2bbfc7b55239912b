package services

import "errors"

var (
	ErrDuplicateDate = errors.New("duplicate date")
	ErrStorageFull   = errors.New("storage full")
	ErrNotFound      = errors.New("not found")
	ErrDuplicateID   = errors.New("duplicate id")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoDraft       = errors.New("no draft")
	ErrUnknown       = errors.New("unknown storage failure")
)

const (
	FailureDuplicateDate = "duplicate-date"
	FailureStorageFull   = "storage-full"
	FailureNotFound      = "not-found"
	FailureDuplicateID   = "duplicate-id"
	FailureInvalidInput  = "invalid-input"
	FailureNoDraft       = "no-draft"
	FailureUnknown       = "unknown"
)

// FailureKind classifies err for callers that show a specific message per
// failure. nil maps to the empty string.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateDate):
		return FailureDuplicateDate
	case errors.Is(err, ErrStorageFull):
		return FailureStorageFull
	case errors.Is(err, ErrNotFound):
		return FailureNotFound
	case errors.Is(err, ErrDuplicateID):
		return FailureDuplicateID
	case errors.Is(err, ErrInvalidInput):
		return FailureInvalidInput
	case errors.Is(err, ErrNoDraft):
		return FailureNoDraft
	default:
		return FailureUnknown
	}
}
