package generator

import (
	"fmt"
	"math"
)

// Defaults for the coal generator.
const (
	DefaultMaxEnergy     = 100_000
	DefaultMaxTransfer   = 1_000
	DefaultEnergyPerTick = 25
)

// Config holds the immutable rate and capacity constants of one generator.
type Config struct {
	MaxEnergy     int `json:"maxEnergy"`
	MaxTransfer   int `json:"maxTransfer"`
	EnergyPerTick int `json:"energyPerTick"`
}

// DefaultConfig returns the stock generator constants.
func DefaultConfig() Config {
	return Config{
		MaxEnergy:     DefaultMaxEnergy,
		MaxTransfer:   DefaultMaxTransfer,
		EnergyPerTick: DefaultEnergyPerTick,
	}
}

// Validate checks that generation can never be rejected by the rate limit.
func (c Config) Validate() error {
	switch {
	case c.MaxEnergy <= 0:
		return fmt.Errorf("maxEnergy must be positive, got %d", c.MaxEnergy)
	case c.MaxEnergy > math.MaxInt32:
		return fmt.Errorf("maxEnergy must fit in 32 bits, got %d", c.MaxEnergy)
	case c.MaxTransfer <= 0:
		return fmt.Errorf("maxTransfer must be positive, got %d", c.MaxTransfer)
	case c.MaxTransfer > math.MaxInt32:
		return fmt.Errorf("maxTransfer must fit in 32 bits, got %d", c.MaxTransfer)
	case c.EnergyPerTick <= 0:
		return fmt.Errorf("energyPerTick must be positive, got %d", c.EnergyPerTick)
	case c.EnergyPerTick > c.MaxTransfer:
		return fmt.Errorf("energyPerTick (%d) exceeds maxTransfer (%d)", c.EnergyPerTick, c.MaxTransfer)
	}
	return nil
}
