package scopetypes

import "errors"

// Error kinds surfaced by the scope engine. None of these are retried
// internally: all are fatal to the enclosing block and reach the host's
// fatal-error reporting path. The first four occur strictly before any
// global mutation; ErrApplyFailure and ErrStackCorruption occur after
// mutation has begun and mean global state can no longer be trusted.
var (
	// ErrInvalidItem means a scope item violates the identifier grammar.
	ErrInvalidItem = errors.New("invalid scope item")

	// ErrUnsupportedOption means an option is syntactically valid but the
	// host capability oracle does not support it.
	ErrUnsupportedOption = errors.New("option not supported by this host")

	// ErrMissingArgument means an option requiring a value was not
	// immediately followed by one.
	ErrMissingArgument = errors.New("option requires an argument")

	// ErrInvalidUsage means split or glob was requested with no trailing
	// tokens to operate on.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrStackCorruption means the LIFO invariant of the save stack was
	// violated (out-of-order pop, or a frame left behind).
	ErrStackCorruption = errors.New("scope stack corrupted")

	// ErrApplyFailure means the host rejected a mutation at runtime after
	// validation had passed.
	ErrApplyFailure = errors.New("failed to apply scope item")
)
