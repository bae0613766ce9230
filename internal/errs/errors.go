// Package errs holds the sentinel errors shared across the module, one per
// §7 error kind, each meant to be wrapped with fmt.Errorf("...: %w", ...) at
// the point of failure rather than constructed directly.
package errs

import "errors"

var (
	// ErrConfig covers malformed or missing configuration/parameter files.
	ErrConfig = errors.New("config error")
	// ErrData covers malformed satellite data files (farm ids, movement
	// frequencies, observed SNP distributions, and the like).
	ErrData = errors.New("data error")
	// ErrInvariant covers a violated model invariant — the Go analogue of the
	// original's IllegalArgumentException/IllegalStateException throws.
	ErrInvariant = errors.New("invariant violated")
	// ErrIO covers filesystem and subprocess failures.
	ErrIO = errors.New("io error")
	// ErrDomain covers a domain rule being broken in a way that is not a
	// bookkeeping invariant (e.g. an unknown diversity model).
	ErrDomain = errors.New("domain error")
)
