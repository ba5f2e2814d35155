package series

import "errors"

// Violations are surfaced to the caller at the point they occur; an empty
// or undersized result is never silently returned in their place.
var (
	// ErrInsufficientData means a series is too short for the requested
	// derivation (fewer than two consecutive valid closes).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrParameterLengthMismatch means the leverage and expense-ratio
	// sequences passed to a batch run differ in length.
	ErrParameterLengthMismatch = errors.New("parameter length mismatch")

	// ErrWindowTooLarge means a rolling window is at least as long as the
	// series, which would leave no valid rows.
	ErrWindowTooLarge = errors.New("window too large")

	// ErrEmptySource means a bootstrap resample was requested from an
	// empty historical return set.
	ErrEmptySource = errors.New("empty source")
)
