package utils

import (
	"io"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/rs/zerolog"

	"github.com/oxygene76/celestial-lookup/internal/types"
)

// NewLogger builds the process logger from the log section.
func NewLogger(cfg LogConfig, w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidConfig, "log level %q", cfg.Level)
	}

	opts := []log.Option{log.LevelOption(level)}
	if cfg.Format == "json" {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(w, opts...), nil
}
