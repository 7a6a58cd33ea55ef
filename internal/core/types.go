package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTopology is returned when a topology name is not recognised.
var ErrInvalidTopology = errors.New("invalid topology")

// Topology selects how neighbour coordinates beyond the edge resolve.
type Topology uint8

const (
	// Bounded treats cells beyond the edge as dead.
	Bounded Topology = iota
	// Toroidal wraps both axes so opposite edges are adjacent.
	Toroidal
)

// String returns the canonical topology name.
func (t Topology) String() string {
	switch t {
	case Bounded:
		return "bounded"
	case Toroidal:
		return "toroidal"
	default:
		return fmt.Sprintf("topology(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the defined topologies.
func (t Topology) Valid() bool { return t == Bounded || t == Toroidal }

// Toggle returns the other topology.
func (t Topology) Toggle() Topology {
	if t == Toroidal {
		return Bounded
	}
	return Toroidal
}

// ParseTopology converts a name such as "bounded" or "torus" into a Topology.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bounded", "plane", "flat":
		return Bounded, nil
	case "toroidal", "torus", "wrap":
		return Toroidal, nil
	}
	return Bounded, fmt.Errorf("%w: %q", ErrInvalidTopology, s)
}

// UnmarshalText lets topologies be decoded from flags and YAML.
func (t *Topology) UnmarshalText(text []byte) error {
	parsed, err := ParseTopology(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopology, uint8(t))
	}
	return []byte(t.String()), nil
}
