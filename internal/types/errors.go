package types

import (
	"cosmossdk.io/errors"
)

// Codespace for lookup, source and configuration errors.
const Codespace = "celestial"

var (
	ErrUnknownBody     = errors.Register(Codespace, 2, "unknown body")
	ErrUnknownSource   = errors.Register(Codespace, 3, "unknown source")
	ErrFetchFailed     = errors.Register(Codespace, 4, "fetch failed")
	ErrInvalidConfig   = errors.Register(Codespace, 5, "invalid config")
	ErrInvalidSchema   = errors.Register(Codespace, 6, "invalid schema")
	ErrUnknownQuantity = errors.Register(Codespace, 7, "unknown quantity")
)
