// Package session tracks the user-facing selections around a Life engine:
// the starting pattern, the rule and theme picked from the catalog, and the
// density and speed controls. Front ends drive the engine through it.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"lifeca/internal/catalog"
	"lifeca/internal/core"
	"lifeca/internal/sims/life"
)

// Density and speed control bounds.
const (
	MinDensityPercent     = 10
	MaxDensityPercent     = 50
	DensityStepPercent    = 5
	DefaultDensityPercent = 30

	MinSpeedMs     = 100
	MaxSpeedMs     = 900
	SpeedStepMs    = 100
	DefaultSpeedMs = 500
)

// Parameter keys understood by SetIntParameter.
const (
	KeyDensity = "density"
	KeySpeed   = "speed_ms"
)

// ErrOutOfBounds is returned when a control value lies outside its range.
var ErrOutOfBounds = errors.New("value out of bounds")

// Config selects the initial catalog entries and control values.
type Config struct {
	Pattern        string
	Theme          string
	DensityPercent int
	SpeedMs        int
}

// DefaultConfig starts from a random fill with the default theme.
func DefaultConfig() Config {
	return Config{
		Pattern:        catalog.RandomPattern,
		Theme:          catalog.DefaultTheme,
		DensityPercent: DefaultDensityPercent,
		SpeedMs:        DefaultSpeedMs,
	}
}

// Session wraps an engine with catalog selections.
type Session struct {
	engine *life.Engine

	mu         sync.Mutex
	pattern    catalog.Pattern
	theme      catalog.Theme
	palette    catalog.Palette
	densityPct int
	speedMs    int
}

// New applies cfg to engine and regenerates its grid from the selected
// pattern. The engine's current rule is kept.
func New(engine *life.Engine, cfg Config) (*Session, error) {
	s := &Session{engine: engine}
	if err := s.setDensity(cfg.DensityPercent); err != nil {
		return nil, err
	}
	if err := s.setSpeed(cfg.SpeedMs); err != nil {
		return nil, err
	}
	if err := s.SelectTheme(cfg.Theme); err != nil {
		return nil, err
	}
	if err := s.SelectPattern(cfg.Pattern); err != nil {
		return nil, err
	}
	return s, nil
}

// Engine returns the wrapped engine.
func (s *Session) Engine() *life.Engine { return s.engine }

// SelectPattern makes name the current pattern and resets the grid with it.
func (s *Session) SelectPattern(name string) error {
	p, err := catalog.LookupPattern(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pattern = p
	s.mu.Unlock()
	return s.Reset()
}

// SelectRule switches the engine to the catalog rule with notation name.
func (s *Session) SelectRule(name string) error {
	info, err := catalog.LookupRule(name)
	if err != nil {
		return err
	}
	rule, err := info.Rule()
	if err != nil {
		return err
	}
	return s.engine.SetRule(rule)
}

// SelectTheme changes the colour scheme.
func (s *Session) SelectTheme(name string) error {
	th, err := catalog.LookupTheme(name)
	if err != nil {
		return err
	}
	pal, err := th.Palette()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.theme = th
	s.palette = pal
	s.mu.Unlock()
	return nil
}

// Reset stops the engine and rebuilds the grid from the current pattern.
// The random pseudo-pattern fills at the density control.
func (s *Session) Reset() error {
	s.mu.Lock()
	p := s.pattern
	s.mu.Unlock()
	if p.Width() == 0 {
		return s.engine.Reset(nil)
	}
	return s.engine.Reset(p.Generator(nil))
}

// PlaceSelected drops the selected pattern with its top-left corner at
// (row, col) while the engine is stopped. It returns the number of cells
// written, which is zero for the random pseudo-pattern.
func (s *Session) PlaceSelected(row, col int) int {
	p := s.Pattern()
	if p.Width() == 0 {
		return 0
	}
	return s.engine.Place(p.Cells, row, col)
}

// ToggleTopology flips between bounded and toroidal edges and returns the
// new topology.
func (s *Session) ToggleTopology() core.Topology {
	next := s.engine.Snapshot().Topology.Toggle()
	_ = s.engine.SetTopology(next)
	return next
}

// CyclePattern selects the pattern delta places away in catalog order.
func (s *Session) CyclePattern(delta int) error {
	patterns := catalog.Patterns()
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.Name
	}
	return s.SelectPattern(cycle(names, s.Pattern().Name, delta))
}

// CycleRule selects the rule delta places away in catalog order.
func (s *Session) CycleRule(delta int) error {
	rules := catalog.Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return s.SelectRule(cycle(names, s.engine.Snapshot().Rule.Notation(), delta))
}

// CycleTheme selects the theme delta places away in catalog order.
func (s *Session) CycleTheme(delta int) error {
	themes := catalog.Themes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return s.SelectTheme(cycle(names, s.Theme().Name, delta))
}

// cycle returns the entry delta places after current, wrapping around. An
// unknown current starts from the first entry.
func cycle(names []string, current string, delta int) string {
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, n := range names {
		if n == current {
			idx = i
			break
		}
	}
	n := len(names)
	return names[((idx+delta)%n+n)%n]
}

// Pattern returns the selected pattern.
func (s *Session) Pattern() catalog.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pattern
}

// Theme returns the selected theme.
func (s *Session) Theme() catalog.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Palette returns the decoded colours of the selected theme.
func (s *Session) Palette() catalog.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palette
}

// RuleInfo returns the catalog entry for the engine's rule. Rules that are
// not in the catalog get an entry built from the rule itself.
func (s *Session) RuleInfo() catalog.RuleInfo {
	rule := s.engine.Snapshot().Rule
	if info, err := catalog.LookupRule(rule.Notation()); err == nil {
		return info
	}
	return catalog.RuleInfo{
		Name:            rule.Notation(),
		Description:     rule.String(),
		LongDescription: rule.Summary(),
		Survive:         rule.Survive.Counts(),
		Birth:           rule.Birth.Counts(),
	}
}

// DensityPercent returns the density control value.
func (s *Session) DensityPercent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.densityPct
}

// SpeedMs returns the speed control value.
func (s *Session) SpeedMs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speedMs
}

// SetDensityPercent sets the random-fill density. It does not reset the grid.
func (s *Session) SetDensityPercent(pct int) error { return s.setDensity(pct) }

// SetSpeedMs sets the delay between generations.
func (s *Session) SetSpeedMs(ms int) error { return s.setSpeed(ms) }

func (s *Session) setDensity(pct int) error {
	if pct < MinDensityPercent || pct > MaxDensityPercent {
		return fmt.Errorf("%w: density %d%% outside [%d,%d]", ErrOutOfBounds, pct, MinDensityPercent, MaxDensityPercent)
	}
	if err := s.engine.SetDensity(float64(pct) / 100); err != nil {
		return err
	}
	s.mu.Lock()
	s.densityPct = pct
	s.mu.Unlock()
	return nil
}

func (s *Session) setSpeed(ms int) error {
	if ms < MinSpeedMs || ms > MaxSpeedMs {
		return fmt.Errorf("%w: speed %dms outside [%d,%d]", ErrOutOfBounds, ms, MinSpeedMs, MaxSpeedMs)
	}
	if err := s.engine.SetSpeed(time.Duration(ms) * time.Millisecond); err != nil {
		return err
	}
	s.mu.Lock()
	s.speedMs = ms
	s.mu.Unlock()
	return nil
}

// ParameterControls exposes density and speed for the HUD.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key: KeyDensity, Label: "Density %", Type: core.ParamTypeInt,
			Step: DensityStepPercent,
			Min:  MinDensityPercent, Max: MaxDensityPercent, HasMin: true, HasMax: true,
		},
		{
			Key: KeySpeed, Label: "Speed ms", Type: core.ParamTypeInt,
			Step: SpeedStepMs,
			Min:  MinSpeedMs, Max: MaxSpeedMs, HasMin: true, HasMax: true,
		},
	}
}

// SetIntParameter clamps value into the control's range and applies it.
func (s *Session) SetIntParameter(key string, value int) bool {
	for _, c := range s.ParameterControls() {
		if c.Key != key {
			continue
		}
		v := int(c.Clamp(float64(value)))
		switch key {
		case KeyDensity:
			return s.setDensity(v) == nil
		case KeySpeed:
			return s.setSpeed(v) == nil
		}
	}
	return false
}

// Parameters reports the current selections grouped for display.
func (s *Session) Parameters() core.ParameterSnapshot {
	st := s.engine.Snapshot()
	info := s.RuleInfo()
	pattern := s.Pattern()
	theme := s.Theme()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Simulation",
			Params: []core.Parameter{
				{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.Itoa(st.Generation)},
				{Key: "living", Label: "Living", Type: core.ParamTypeInt, Value: strconv.Itoa(st.Living)},
				{Key: "running", Label: "Running", Type: core.ParamTypeBool, Value: strconv.FormatBool(st.Running)},
				{Key: "size", Label: "Size", Type: core.ParamTypeInt, Value: strconv.Itoa(st.Grid.Size())},
				{Key: "topology", Label: "Topology", Type: core.ParamTypeString, Value: st.Topology.String()},
			},
		},
		{
			Name:    "Rule",
			Summary: info.Description,
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: info.Name, Description: st.Rule.Summary()},
			},
		},
		{
			Name: "Setup",
			Params: []core.Parameter{
				{Key: "pattern", Label: "Pattern", Type: core.ParamTypeString, Value: pattern.Name, Description: pattern.Description},
				{Key: KeyDensity, Label: "Density %", Type: core.ParamTypeInt, Value: strconv.Itoa(s.DensityPercent())},
				{Key: KeySpeed, Label: "Speed ms", Type: core.ParamTypeInt, Value: strconv.Itoa(s.SpeedMs())},
				{Key: "theme", Label: "Theme", Type: core.ParamTypeString, Value: theme.Name},
			},
		},
	}}
}
