// Package catalog holds the built-in rules, starting patterns and colour
// themes. The data is embedded YAML decoded on first use; every accessor
// returns copies so callers may modify what they receive.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"lifeca/internal/sims/life"
)

// DefaultTheme names the theme used when none is selected.
const DefaultTheme = "Pastel"

// RandomPattern names the pseudo-pattern that requests a random fill.
const RandomPattern = "Random"

// ErrNotFound is returned by lookups for unknown names.
var ErrNotFound = errors.New("catalog entry not found")

//go:embed catalog.yaml
var raw []byte

// RuleInfo describes one built-in rule.
type RuleInfo struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	LongDescription string `yaml:"long_description"`
	Examples        string `yaml:"examples"`
	Survive         []int  `yaml:"survive"`
	Birth           []int  `yaml:"birth"`
}

// Rule converts the entry into an engine rule.
func (r RuleInfo) Rule() (life.Rule, error) {
	return life.NewRule(r.Name, r.Survive, r.Birth)
}

// Pattern is a named starting configuration. Cells is row-major and
// rectangular; an empty Cells means a random fill.
type Pattern struct {
	Name            string
	Description     string
	LongDescription string
	Cells           [][]bool
}

// Width and Height return the pattern's bounding box.
func (p Pattern) Width() int {
	if len(p.Cells) == 0 {
		return 0
	}
	return len(p.Cells[0])
}

func (p Pattern) Height() int { return len(p.Cells) }

// Alive counts the live cells in the pattern.
func (p Pattern) Alive() int {
	n := 0
	for _, row := range p.Cells {
		for _, c := range row {
			if c {
				n++
			}
		}
	}
	return n
}

// Generator returns a generator that centres the pattern, or fills the grid
// at fallback when the pattern is empty.
func (p Pattern) Generator(fallback life.Generator) life.Generator {
	return life.Stamp{Cells: p.Cells, Fallback: fallback}
}

// Theme is a colour scheme given as "#rrggbb" strings.
type Theme struct {
	Name          string `yaml:"name"`
	CellColor     string `yaml:"cell_color"`
	BgColor       string `yaml:"bg_color"`
	HoverColor    string `yaml:"hover_color"`
	GridLineColor string `yaml:"grid_line_color"`
}

// Palette is a Theme decoded into colours.
type Palette struct {
	Cell     color.RGBA
	Bg       color.RGBA
	Hover    color.RGBA
	GridLine color.RGBA
}

// Palette decodes the theme's colours.
func (t Theme) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.Cell, err = ParseHex(t.CellColor); err != nil {
		return Palette{}, err
	}
	if p.Bg, err = ParseHex(t.BgColor); err != nil {
		return Palette{}, err
	}
	if p.Hover, err = ParseHex(t.HoverColor); err != nil {
		return Palette{}, err
	}
	if p.GridLine, err = ParseHex(t.GridLineColor); err != nil {
		return Palette{}, err
	}
	return p, nil
}

// ParseHex decodes "#rrggbb" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

type patternDoc struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	LongDescription string   `yaml:"long_description"`
	Rows            []string `yaml:"rows"`
}

type document struct {
	Rules    []RuleInfo   `yaml:"rules"`
	Patterns []patternDoc `yaml:"patterns"`
	Themes   []Theme      `yaml:"themes"`
}

type data struct {
	rules    []RuleInfo
	patterns []Pattern
	themes   []Theme
}

var (
	loadOnce sync.Once
	loaded   data
	loadErr  error
)

func get() data {
	loadOnce.Do(func() {
		loaded, loadErr = decode(raw)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("catalog: %v", loadErr))
	}
	return loaded
}

func decode(b []byte) (data, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return data{}, err
	}
	var d data
	for _, r := range doc.Rules {
		if _, err := r.Rule(); err != nil {
			return data{}, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		d.rules = append(d.rules, r)
	}
	for _, p := range doc.Patterns {
		cells, err := parseRows(p.Rows)
		if err != nil {
			return data{}, fmt.Errorf("pattern %q: %w", p.Name, err)
		}
		d.patterns = append(d.patterns, Pattern{
			Name:            p.Name,
			Description:     p.Description,
			LongDescription: p.LongDescription,
			Cells:           cells,
		})
	}
	for _, t := range doc.Themes {
		if _, err := t.Palette(); err != nil {
			return data{}, fmt.Errorf("theme %q: %w", t.Name, err)
		}
		d.themes = append(d.themes, t)
	}
	return d, nil
}

// parseRows turns 'O'/'.' rows into a rectangular cell matrix.
func parseRows(rows []string) ([][]bool, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	width := len(rows[0])
	cells := make([][]bool, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", i, len(row), width)
		}
		cells[i] = make([]bool, width)
		for j := 0; j < width; j++ {
			switch row[j] {
			case 'O', 'o', '*':
				cells[i][j] = true
			case '.', ' ':
			default:
				return nil, fmt.Errorf("row %d: unexpected %q", i, row[j])
			}
		}
	}
	return cells, nil
}

// Rules returns the built-in rules in display order.
func Rules() []RuleInfo {
	src := get().rules
	out := make([]RuleInfo, len(src))
	for i, r := range src {
		out[i] = copyRule(r)
	}
	return out
}

// LookupRule looks up a rule by its notation, e.g. "23/3".
func LookupRule(name string) (RuleInfo, error) {
	for _, r := range get().rules {
		if r.Name == name {
			return copyRule(r), nil
		}
	}
	return RuleInfo{}, fmt.Errorf("%w: rule %q", ErrNotFound, name)
}

// Patterns returns the built-in patterns in display order.
func Patterns() []Pattern {
	src := get().patterns
	out := make([]Pattern, len(src))
	for i, p := range src {
		out[i] = copyPattern(p)
	}
	return out
}

// LookupPattern finds a pattern by name, ignoring case.
func LookupPattern(name string) (Pattern, error) {
	for _, p := range get().patterns {
		if strings.EqualFold(p.Name, name) {
			return copyPattern(p), nil
		}
	}
	return Pattern{}, fmt.Errorf("%w: pattern %q", ErrNotFound, name)
}

// Themes returns the built-in themes in display order.
func Themes() []Theme {
	return append([]Theme(nil), get().themes...)
}

// LookupTheme finds a theme by name, ignoring case.
func LookupTheme(name string) (Theme, error) {
	for _, t := range get().themes {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: theme %q", ErrNotFound, name)
}

func copyRule(r RuleInfo) RuleInfo {
	r.Survive = append([]int(nil), r.Survive...)
	r.Birth = append([]int(nil), r.Birth...)
	return r
}

func copyPattern(p Pattern) Pattern {
	if p.Cells == nil {
		return p
	}
	cells := make([][]bool, len(p.Cells))
	for i, row := range p.Cells {
		cells[i] = append([]bool(nil), row...)
	}
	p.Cells = cells
	return p
}
