package catalog

import (
	"errors"
	"image/color"
	"testing"

	"lifeca/internal/sims/life"
)

func TestRulesMatchNotation(t *testing.T) {
	rules := Rules()
	if len(rules) < 10 {
		t.Fatalf("expected at least 10 rules, got %d", len(rules))
	}
	if rules[0].Name != "23/3" {
		t.Fatalf("expected Conway first, got %q", rules[0].Name)
	}
	for _, info := range rules {
		r, err := info.Rule()
		if err != nil {
			t.Fatalf("rule %q: %v", info.Name, err)
		}
		if r.Notation() != info.Name {
			t.Fatalf("rule %q has notation %q", info.Name, r.Notation())
		}
		if info.Description == "" {
			t.Fatalf("rule %q has no description", info.Name)
		}
	}
}

func TestLookupRule(t *testing.T) {
	info, err := LookupRule("/2")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if info.Description != "Seeds" {
		t.Fatalf("unexpected description %q", info.Description)
	}
	r, err := info.Rule()
	if err != nil {
		t.Fatalf("rule: %v", err)
	}
	if r.Next(true, 2) || !r.Next(false, 2) {
		t.Fatalf("seeds rule transitions wrong")
	}

	conway, err := LookupRule("23/3")
	if err != nil {
		t.Fatalf("lookup conway: %v", err)
	}
	got, _ := conway.Rule()
	if got != life.Conway {
		t.Fatalf("expected %+v, got %+v", life.Conway, got)
	}

	if _, err := LookupRule("99/9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPatternShapes(t *testing.T) {
	cases := []struct {
		name        string
		h, w, alive int
	}{
		{"Glider", 3, 3, 5},
		{"Blinker", 1, 3, 3},
		{"Block", 2, 2, 4},
		{"Beehive", 3, 4, 6},
		{"Loaf", 4, 4, 7},
		{"Toad", 2, 4, 6},
		{"Pulsar", 13, 13, 48},
		{"Gosper Glider Gun", 9, 36, 36},
		{"Spaceship", 4, 5, 9},
		{RandomPattern, 0, 0, 0},
	}
	for _, tc := range cases {
		p, err := LookupPattern(tc.name)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if p.Height() != tc.h || p.Width() != tc.w || p.Alive() != tc.alive {
			t.Fatalf("%s: got %dx%d with %d alive, want %dx%d with %d", tc.name, p.Height(), p.Width(), p.Alive(), tc.h, tc.w, tc.alive)
		}
	}
}

func TestLookupPatternIgnoresCase(t *testing.T) {
	p, err := LookupPattern("glider")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p.Name != "Glider" {
		t.Fatalf("unexpected name %q", p.Name)
	}
	if _, err := LookupPattern("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	p, _ := LookupPattern("Block")
	p.Cells[0][0] = false
	again, _ := LookupPattern("Block")
	if !again.Cells[0][0] {
		t.Fatalf("pattern cells shared with caller")
	}

	rules := Rules()
	rules[0].Survive[0] = 7
	if Rules()[0].Survive[0] != 2 {
		t.Fatalf("rule counts shared with caller")
	}
}

func TestPatternGenerator(t *testing.T) {
	p, _ := LookupPattern("Blinker")
	grid, err := p.Generator(nil).Generate(5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for col := 1; col <= 3; col++ {
		if alive, _ := grid.Get(2, col); !alive {
			t.Fatalf("expected (2,%d) alive:\n%s", col, grid)
		}
	}
	if grid.Alive() != 3 {
		t.Fatalf("expected 3 alive, got %d", grid.Alive())
	}

	random, _ := LookupPattern(RandomPattern)
	full, err := random.Generator(life.Random{Density: 1}).Generate(4)
	if err != nil {
		t.Fatalf("generate random: %v", err)
	}
	if full.Alive() != 16 {
		t.Fatalf("expected fallback fill, got %d alive", full.Alive())
	}
}

func TestThemes(t *testing.T) {
	themes := Themes()
	if len(themes) == 0 || themes[0].Name != DefaultTheme {
		t.Fatalf("expected %s first, got %+v", DefaultTheme, themes)
	}
	th, err := LookupTheme("pastel")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	pal, err := th.Palette()
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if pal.Bg != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Fatalf("unexpected background %+v", pal.Bg)
	}
	if _, err := LookupTheme("neon"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#8b5cf6")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (color.RGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff}) {
		t.Fatalf("unexpected colour %+v", c)
	}
	for _, bad := range []string{"", "#fff", "#zzzzzz", "12345678"} {
		if _, err := ParseHex(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDecodeRejectsRaggedPattern(t *testing.T) {
	doc := []byte("patterns:\n  - name: Bad\n    rows: [\"OO\", \"O\"]\n")
	if _, err := decode(doc); err == nil {
		t.Fatalf("expected ragged rows to be rejected")
	}
	doc = []byte("rules:\n  - name: bad\n    survive: [9]\n    birth: [3]\n")
	if _, err := decode(doc); err == nil {
		t.Fatalf("expected out-of-range rule to be rejected")
	}
}
