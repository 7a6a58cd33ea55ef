package life

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"lifeca/internal/core"
)

// ErrInvalidSpeed is returned for non-positive step intervals.
var ErrInvalidSpeed = errors.New("invalid step interval")

// Config controls the engine's grid, rule and run loop.
type Config struct {
	Size     int
	Topology core.Topology
	Rule     Rule

	Density float64
	Seed    int64

	Interval time.Duration
	Workers  int
}

// DefaultConfig returns the standard configuration: a 50x50 bounded grid
// running Conway's rule at two generations per second.
func DefaultConfig() Config {
	return Config{
		Size:     50,
		Topology: core.Bounded,
		Rule:     Conway,
		Density:  DefaultDensity,
		Seed:     42,
		Interval: 500 * time.Millisecond,
		Workers:  1,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidSize, c.Size)
	}
	if !c.Topology.Valid() {
		return fmt.Errorf("%w: %d", core.ErrInvalidTopology, c.Topology)
	}
	if err := c.Rule.Validate(); err != nil {
		return err
	}
	if err := ValidateDensity(c.Density); err != nil {
		return err
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, c.Interval)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unparseable or out-of-range values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["topology"]; ok {
		if parsed, err := core.ParseTopology(v); err == nil {
			c.Topology = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := ParseRule(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && ValidateDensity(parsed) == nil {
			c.Density = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["interval_ms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Interval = time.Duration(parsed) * time.Millisecond
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	return c
}
