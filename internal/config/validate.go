package config

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"filebak/internal/expr"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidInterval indicates a non-positive pass interval.
	ErrInvalidInterval = errors.New("interval_minutes must be >= 1")

	// ErrMissingDestination indicates the destination field is empty.
	ErrMissingDestination = errors.New("destination is required")

	// ErrMissingRoot indicates a source was declared without a root.
	ErrMissingRoot = errors.New("source root is required")
)

// SourceError wraps a validation error with the index of the offending
// source declaration.
type SourceError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("sources[%d]: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
// Configuration errors are rejected here, eagerly, never coerced.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}
	if cfg.IntervalMinutes < 1 {
		errs = append(errs, errors.Wrapf(ErrInvalidInterval, "got %d", cfg.IntervalMinutes))
	}
	if cfg.Destination == "" {
		errs = append(errs, ErrMissingDestination)
	}

	for i, src := range cfg.Sources {
		if src.Root == "" {
			errs = append(errs, &SourceError{Index: i, Err: ErrMissingRoot})
		}
		if _, err := src.Selector(); err != nil {
			errs = append(errs, &SourceError{Index: i, Err: err})
		}
	}

	return errs
}

// Selector compiles the source's selection rule into an expression.
// A source without a select clause matches every regular file.
func (s Source) Selector() (expr.Expr, error) {
	if len(s.Select) == 0 {
		return expr.All(), nil
	}
	return expr.FromSpec(s.Select)
}
