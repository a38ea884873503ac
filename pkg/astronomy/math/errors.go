package math

import (
	"cosmossdk.io/errors"
)

// Codespace for absence reasons carried by Value.
const Codespace = "astro"

var (
	// ErrMissingInput marks a quantity whose source field was absent or null.
	ErrMissingInput = errors.Register(Codespace, 2, "missing input")

	// ErrDegenerateInput marks a quantity whose inputs make the formula
	// undefined or non-physical (zero radius, e >= 1, non-positive mass).
	ErrDegenerateInput = errors.Register(Codespace, 3, "degenerate input")

	// ErrMalformedValue marks a raw field that could not be read as a number.
	ErrMalformedValue = errors.Register(Codespace, 4, "malformed value")
)
