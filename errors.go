package infopid

import "errors"

// Sentinel errors returned by Session operations. Callers discriminate kinds
// with errors.Is; wrapped errors (via fmt.Errorf("...: %w", ...)) still
// satisfy errors.Is against these.
var (
	// ErrInvalidArg indicates dimensionality <= 0, a non-positive bin count,
	// an inverted range, or a mismatched vector length.
	ErrInvalidArg = errors.New("infopid: invalid argument")

	// ErrNotConfigured indicates a sample was added before a BinSpec was
	// installed on every axis.
	ErrNotConfigured = errors.New("infopid: session not configured")

	// ErrAlreadyConfigured indicates an attempt to change binning after
	// samples have already been added.
	ErrAlreadyConfigured = errors.New("infopid: session already configured")

	// ErrRequiresR1 indicates explicit boundaries were requested on an axis
	// while R > 1 shifted grids are in use.
	ErrRequiresR1 = errors.New("infopid: explicit boundaries require R == 1")

	// ErrBadRoleVector indicates a role vector of the wrong length, using a
	// tag not allowed for the requested query, or missing a required tag.
	ErrBadRoleVector = errors.New("infopid: bad role vector")

	// ErrInvalidCoord indicates a bin coordinate outside the legal range was
	// passed to the sparse histogram. This signals a bug in this library's
	// binning step, not caller misuse.
	ErrInvalidCoord = errors.New("infopid: invalid bin coordinate")
)
