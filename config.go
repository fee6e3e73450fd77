package mie

import (
	"log/slog"
)

// Config controls engine behaviour that does not affect results.
type Config struct {
	// MaxEntries bounds the result cache (LRU eviction). 0 keeps every
	// parameter signature for the lifetime of the engine.
	MaxEntries int

	// Logger receives debug records about algorithm selection and cache
	// activity. nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns an unbounded cache and a discarding logger.
func DefaultConfig() Config {
	return Config{
		MaxEntries: 0,
		Logger:     nil,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
