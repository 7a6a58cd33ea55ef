package session

import (
	"errors"
	"testing"
	"time"

	"lifeca/internal/catalog"
	"lifeca/internal/core"
	"lifeca/internal/sims/life"
)

func newSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	lc := life.DefaultConfig()
	lc.Size = 20
	e, err := life.New(lc)
	if err != nil {
		t.Fatalf("life.New: %v", err)
	}
	s, err := New(e, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewAppliesDefaults(t *testing.T) {
	s := newSession(t, DefaultConfig())
	if s.Pattern().Name != catalog.RandomPattern {
		t.Fatalf("expected random pattern, got %q", s.Pattern().Name)
	}
	if s.Theme().Name != catalog.DefaultTheme {
		t.Fatalf("expected default theme, got %q", s.Theme().Name)
	}
	if s.DensityPercent() != DefaultDensityPercent || s.SpeedMs() != DefaultSpeedMs {
		t.Fatalf("unexpected controls density=%d speed=%d", s.DensityPercent(), s.SpeedMs())
	}
	if got := s.Engine().Speed(); got != 500*time.Millisecond {
		t.Fatalf("engine speed %v", got)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	e, err := life.New(life.DefaultConfig())
	if err != nil {
		t.Fatalf("life.New: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Pattern = "Unknown"
	if _, err := New(e, cfg); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.DensityPercent = 90
	if _, err := New(e, cfg); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestSelectPatternResets(t *testing.T) {
	s := newSession(t, DefaultConfig())
	s.Engine().Step()
	s.Engine().Start()
	if err := s.SelectPattern("Glider"); err != nil {
		t.Fatalf("SelectPattern: %v", err)
	}
	st := s.Engine().Snapshot()
	if st.Running || st.Generation != 0 || st.Living != 5 {
		t.Fatalf("after select running=%v gen=%d living=%d", st.Running, st.Generation, st.Living)
	}
	if alive, _ := st.Grid.Get(8, 9); !alive {
		t.Fatalf("expected centred glider:\n%s", st.Grid)
	}
}

func TestResetRandomUsesDensity(t *testing.T) {
	s := newSession(t, DefaultConfig())
	if err := s.SetDensityPercent(MaxDensityPercent); err != nil {
		t.Fatalf("SetDensityPercent: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	living := s.Engine().LivingCells()
	if living < 120 || living > 280 {
		t.Fatalf("expected roughly half of 400 alive, got %d", living)
	}
}

func TestSelectRule(t *testing.T) {
	s := newSession(t, DefaultConfig())
	if err := s.SelectRule("23/36"); err != nil {
		t.Fatalf("SelectRule: %v", err)
	}
	if got := s.Engine().Snapshot().Rule.Notation(); got != "23/36" {
		t.Fatalf("engine rule %q", got)
	}
	if s.RuleInfo().Description != "HighLife" {
		t.Fatalf("unexpected info %+v", s.RuleInfo())
	}
	if err := s.SelectRule("9/9"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRuleInfoOutsideCatalog(t *testing.T) {
	s := newSession(t, DefaultConfig())
	r, err := life.ParseRule("B36/S125")
	if err != nil {
		t.Fatalf("ParseRule: %v", err)
	}
	custom, _ := life.ParseRule("B1/S1")
	if err := s.Engine().SetRule(custom); err != nil {
		t.Fatalf("SetRule: %v", err)
	}
	info := s.RuleInfo()
	if info.Name != "1/1" || info.LongDescription != custom.Summary() {
		t.Fatalf("unexpected info %+v", info)
	}
	if err := s.Engine().SetRule(r); err != nil {
		t.Fatalf("SetRule: %v", err)
	}
	if s.RuleInfo().Description != "2x2" {
		t.Fatalf("expected catalog entry, got %+v", s.RuleInfo())
	}
}

func TestPlaceSelected(t *testing.T) {
	s := newSession(t, DefaultConfig())
	if err := s.SelectPattern("Block"); err != nil {
		t.Fatalf("SelectPattern: %v", err)
	}
	if n := s.PlaceSelected(0, 0); n != 4 {
		t.Fatalf("expected 4 cells written, got %d", n)
	}
	if s.Engine().LivingCells() != 8 {
		t.Fatalf("expected two blocks, got %d alive", s.Engine().LivingCells())
	}
	if n := s.PlaceSelected(19, 19); n != 1 {
		t.Fatalf("expected clipped placement to write 1 cell, got %d", n)
	}

	s.Engine().Start()
	if n := s.PlaceSelected(5, 5); n != 0 {
		t.Fatalf("placement while running wrote %d cells", n)
	}
	s.Engine().Stop()

	if err := s.SelectPattern(catalog.RandomPattern); err != nil {
		t.Fatalf("SelectPattern: %v", err)
	}
	if n := s.PlaceSelected(0, 0); n != 0 {
		t.Fatalf("random pattern placed %d cells", n)
	}
}

func TestToggleTopology(t *testing.T) {
	s := newSession(t, DefaultConfig())
	if got := s.ToggleTopology(); got != core.Toroidal {
		t.Fatalf("expected toroidal, got %v", got)
	}
	if got := s.ToggleTopology(); got != core.Bounded {
		t.Fatalf("expected bounded, got %v", got)
	}
}

func TestCycling(t *testing.T) {
	s := newSession(t, DefaultConfig())
	patterns := catalog.Patterns()
	if err := s.CyclePattern(1); err != nil {
		t.Fatalf("CyclePattern: %v", err)
	}
	if s.Pattern().Name != patterns[1].Name {
		t.Fatalf("expected %q, got %q", patterns[1].Name, s.Pattern().Name)
	}
	if err := s.CyclePattern(-2); err != nil {
		t.Fatalf("CyclePattern: %v", err)
	}
	if s.Pattern().Name != patterns[len(patterns)-1].Name {
		t.Fatalf("expected wrap to last, got %q", s.Pattern().Name)
	}

	rules := catalog.Rules()
	if err := s.CycleRule(-1); err != nil {
		t.Fatalf("CycleRule: %v", err)
	}
	if got := s.Engine().Snapshot().Rule.Notation(); got != rules[len(rules)-1].Name {
		t.Fatalf("expected last rule, got %q", got)
	}

	if err := s.CycleTheme(1); err != nil {
		t.Fatalf("CycleTheme: %v", err)
	}
	if s.Theme().Name == catalog.DefaultTheme {
		t.Fatalf("theme did not change")
	}
}

func TestCycleHelper(t *testing.T) {
	names := []string{"a", "b", "c"}
	cases := []struct {
		current string
		delta   int
		want    string
	}{
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"b", 5, "a"},
		{"missing", 1, "b"},
	}
	for _, tc := range cases {
		if got := cycle(names, tc.current, tc.delta); got != tc.want {
			t.Fatalf("cycle(%q,%d)=%q, want %q", tc.current, tc.delta, got, tc.want)
		}
	}
}

func TestSetIntParameterClamps(t *testing.T) {
	s := newSession(t, DefaultConfig())
	if !s.SetIntParameter(KeyDensity, 95) {
		t.Fatalf("density update rejected")
	}
	if s.DensityPercent() != MaxDensityPercent {
		t.Fatalf("expected clamp to %d, got %d", MaxDensityPercent, s.DensityPercent())
	}
	if !s.SetIntParameter(KeySpeed, 20) {
		t.Fatalf("speed update rejected")
	}
	if s.SpeedMs() != MinSpeedMs || s.Engine().Speed() != 100*time.Millisecond {
		t.Fatalf("expected speed clamp, got %d / %v", s.SpeedMs(), s.Engine().Speed())
	}
	if s.SetIntParameter("unknown", 1) {
		t.Fatalf("unknown key accepted")
	}
}

func TestParameters(t *testing.T) {
	s := newSession(t, DefaultConfig())
	if err := s.SelectPattern("Block"); err != nil {
		t.Fatalf("SelectPattern: %v", err)
	}
	snap := s.Parameters()
	want := map[string]string{
		"generation": "0",
		"living":     "4",
		"running":    "false",
		"topology":   "bounded",
		"rule":       "23/3",
		"pattern":    "Block",
		KeyDensity:   "30",
		KeySpeed:     "500",
		"theme":      catalog.DefaultTheme,
	}
	for key, value := range want {
		p, ok := snap.Lookup(key)
		if !ok {
			t.Fatalf("missing parameter %q", key)
		}
		if p.Value != value {
			t.Fatalf("%s=%q, want %q", key, p.Value, value)
		}
	}
}
