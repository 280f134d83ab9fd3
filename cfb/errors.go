package cfb

import "github.com/go-cfb/cfb/internal/cfberr"

// Error is the typed error value every exported Reader method returns
// failures as, per spec.md §6. Use errors.As to recover Kind/Cause, or
// errors.Is against the sentinels below to test for a specific condition.
type Error = cfberr.Error

// Sentinel errors, one per Error.Kind, for errors.Is comparisons.
var (
	ErrInvalidFormat   = cfberr.ErrInvalidFormat
	ErrNoSuchStream    = cfberr.ErrNoSuchStream
	ErrIOError         = cfberr.ErrIOError
	ErrVersionMismatch = cfberr.ErrVersionMismatch
	ErrTruncated       = cfberr.ErrTruncated
)
