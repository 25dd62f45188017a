package ads

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrNoDateColumn means a sheet had no resolvable date column and was
	// rejected without contributing rows.
	ErrNoDateColumn = errors.New("no usable date column")

	// ErrMissingColumns means one or more required funnel/cost columns
	// could not be resolved against the synonym table.
	ErrMissingColumns = errors.New("required columns missing")

	// ErrNoData is the distinguishable "no rows after normalization or
	// filtering" condition. It is a normal outcome, not a failure.
	ErrNoData = errors.New("no data rows")
)

// NewMissingColumnsError names the canonical fields that failed to resolve.
func NewMissingColumnsError(fields []string) error {
	return fmt.Errorf("%w: %v", ErrMissingColumns, fields)
}

// IsSheetRejection reports whether an error is a recoverable per-sheet
// rejection (skip the source, keep going).
func IsSheetRejection(err error) bool {
	return errors.Is(err, ErrNoDateColumn) || errors.Is(err, ErrMissingColumns)
}
