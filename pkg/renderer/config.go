package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a renderer cannot be built from its configuration
var ErrInvalidConfig = errors.New("invalid renderer config")

// Config contains the scheduling parameters of a render
type Config struct {
	NumWorkers int    // Number of parallel workers (0 = use CPU count)
	Seed       uint64 // Base seed; each pixel draws from its own stream of it
}

// DefaultConfig returns 4 workers and seed 42
func DefaultConfig() Config {
	return Config{
		NumWorkers: 4,
		Seed:       42,
	}
}

// Validate checks the worker count
func (c Config) Validate() error {
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}
