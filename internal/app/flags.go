package app

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"lifeca/internal/core"
	"lifeca/internal/session"
	"lifeca/internal/sims/life"
)

// Config represents the command-line parameters for the front ends. The same
// fields can be supplied through a YAML file named by -config.
type Config struct {
	Size     int    `yaml:"size"`
	Topology string `yaml:"topology"`
	Rule     string `yaml:"rule"`
	Pattern  string `yaml:"pattern"`
	Theme    string `yaml:"theme"`
	Density  int    `yaml:"density_percent"`
	SpeedMs  int    `yaml:"speed_ms"`
	Seed     int64  `yaml:"seed"`
	Workers  int    `yaml:"workers"`

	Scale    int `yaml:"scale"`
	TPS      int `yaml:"tps"`
	HUDWidth int `yaml:"hud_width"`

	File string `yaml:"-"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Size:     50,
		Topology: core.Bounded.String(),
		Rule:     life.Conway.Notation(),
		Pattern:  "Random",
		Theme:    "Pastel",
		Density:  session.DefaultDensityPercent,
		SpeedMs:  session.DefaultSpeedMs,
		Seed:     42,
		Workers:  1,
		Scale:    12,
		TPS:      60,
		HUDWidth: 260,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "YAML file with default settings")
	fs.IntVar(&c.Size, "size", c.Size, "grid dimension")
	fs.StringVar(&c.Topology, "topology", c.Topology, "bounded or toroidal")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule in S/B notation, e.g. 23/3")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "starting pattern")
	fs.StringVar(&c.Theme, "theme", c.Theme, "colour theme")
	fs.IntVar(&c.Density, "density", c.Density, "random fill density in percent")
	fs.IntVar(&c.SpeedMs, "speed", c.SpeedMs, "milliseconds between generations")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fills")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per generation")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 to hide)")
}

// Load binds a fresh Config to fs and parses args. When -config names a
// file its values replace the defaults, and flags given on the command line
// still win.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	c := NewConfig()
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.File == "" {
		return c, nil
	}
	file := c.File
	if err := c.ReadFile(file); err != nil {
		return nil, err
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.File = file
	return c, nil
}

// ReadFile overlays the YAML document at path onto c.
func (c *Config) ReadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LifeConfig converts the engine-related fields, reporting the first invalid
// one.
func (c *Config) LifeConfig() (life.Config, error) {
	lc := life.DefaultConfig()
	topo, err := core.ParseTopology(c.Topology)
	if err != nil {
		return lc, err
	}
	rule, err := life.ParseRule(c.Rule)
	if err != nil {
		return lc, err
	}
	lc.Size = c.Size
	lc.Topology = topo
	lc.Rule = rule
	lc.Density = float64(c.Density) / 100
	lc.Seed = c.Seed
	lc.Interval = time.Duration(c.SpeedMs) * time.Millisecond
	if c.Workers > 0 {
		lc.Workers = c.Workers
	}
	return lc, lc.Validate()
}

// SessionConfig returns the catalog selections and control values.
func (c *Config) SessionConfig() session.Config {
	return session.Config{
		Pattern:        c.Pattern,
		Theme:          c.Theme,
		DensityPercent: c.Density,
		SpeedMs:        c.SpeedMs,
	}
}

// NewSession builds the engine and wraps it in a session.
func (c *Config) NewSession() (*session.Session, error) {
	lc, err := c.LifeConfig()
	if err != nil {
		return nil, err
	}
	engine, err := life.New(lc)
	if err != nil {
		return nil, err
	}
	return session.New(engine, c.SessionConfig())
}
