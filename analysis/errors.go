package pisano

import "errors"

var (
	// ErrModulusTooSmall is returned before any recurrence runs.
	// Modulo arithmetic below 2 is degenerate, callers clamp to 3.
	ErrModulusTooSmall = errors.New("modulus must be at least 2")

	// ErrCapExceeded means the recurrence did not close within the
	// iteration cap. The partial result is never returned as a period.
	ErrCapExceeded = errors.New("period did not close within the iteration cap")
)
