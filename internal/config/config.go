package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
	"github.com/18Orion/ParticleInteractionSimulator/internal/physics"
	"github.com/18Orion/ParticleInteractionSimulator/internal/sim"
)

const (
	DefaultTick        = 0.1
	DefaultDuration    = 10.0
	DefaultSampleEvery = 1
)

// Config describes a scenario: the tick, how long to run and the bodies
// in insertion order.
type Config struct {
	Name        string       `yaml:"name"`
	Tick        float64      `yaml:"tick"`
	Duration    float64      `yaml:"duration"`
	Ticks       int          `yaml:"ticks,omitempty"`
	SampleEvery int          `yaml:"sample_every"`
	Bodies      []BodyConfig `yaml:"bodies"`
}

// BodyConfig is one body. With RelativeTo set, Position and Velocity are
// offsets from that body; with Orbit set they are ignored.
type BodyConfig struct {
	Name       string       `yaml:"name"`
	Mass       float64      `yaml:"mass"`
	Charge     float64      `yaml:"charge,omitempty"`
	Radius     float64      `yaml:"radius"`
	Position   [2]float64   `yaml:"position,flow"`
	Velocity   [2]float64   `yaml:"velocity,flow"`
	Fixed      bool         `yaml:"fixed,omitempty"`
	RelativeTo string       `yaml:"relative_to,omitempty"`
	Orbit      *OrbitConfig `yaml:"orbit,omitempty"`
}

type OrbitConfig struct {
	Reference string  `yaml:"reference"`
	Altitude  float64 `yaml:"altitude"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "untitled",
		Tick:        DefaultTick,
		Duration:    DefaultDuration,
		SampleEvery: DefaultSampleEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the tick, run length and that every reference names an
// earlier body.
func (c *Config) Validate() error {
	if !(c.Tick > 0) || math.IsInf(c.Tick, 0) {
		return fmt.Errorf("%w: got %g", dynamo.ErrInvalidTick, c.Tick)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	if c.Ticks == 0 && !(c.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if len(c.Bodies) == 0 {
		return dynamo.ErrEmptyScenario
	}

	seen := make(map[string]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.RelativeTo != "" && b.Orbit != nil {
			return fmt.Errorf("body %d (%s): relative_to and orbit are exclusive", i, b.Name)
		}
		ref := b.RelativeTo
		if b.Orbit != nil {
			ref = b.Orbit.Reference
		}
		if ref != "" && !seen[ref] {
			return fmt.Errorf("body %d (%s): %w %q", i, b.Name, dynamo.ErrUnknownBody, ref)
		}
		if b.Name != "" {
			if seen[b.Name] {
				return fmt.Errorf("body %d: duplicate name %q", i, b.Name)
			}
			seen[b.Name] = true
		}
	}
	return nil
}

// BuildBodies resolves references and seeds each body in order.
func (c *Config) BuildBodies() ([]physics.Body, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bodies := make([]physics.Body, 0, len(c.Bodies))
	byName := make(map[string]physics.Body, len(c.Bodies))

	for _, bc := range c.Bodies {
		var b physics.Body
		switch {
		case bc.Orbit != nil:
			b = physics.DeriveCircularOrbit(byName[bc.Orbit.Reference], bc.Mass, bc.Charge, bc.Radius, bc.Orbit.Altitude)
			b.Name = bc.Name
		case bc.RelativeTo != "":
			b = physics.DeriveRelative(byName[bc.RelativeTo], bc.Mass, bc.Charge, bc.Radius, bc.options()...)
		default:
			b = physics.NewBody(bc.Mass, bc.Charge, bc.Radius, bc.options()...)
		}
		if err := b.Validate(); err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
		if bc.Name != "" {
			byName[bc.Name] = b
		}
	}
	return bodies, nil
}

// Build creates a world holding the scenario's bodies.
func (c *Config) Build(opts ...sim.Option) (*sim.World, error) {
	bodies, err := c.BuildBodies()
	if err != nil {
		return nil, err
	}
	w, err := sim.New(c.Tick, opts...)
	if err != nil {
		return nil, err
	}
	for _, b := range bodies {
		w.AddBody(b)
	}
	return w, nil
}

// RunConfig converts the scenario's run length into a sim.RunConfig.
func (c *Config) RunConfig() sim.RunConfig {
	cfg := sim.DefaultRunConfig()
	cfg.Duration = c.Duration
	cfg.Ticks = c.Ticks
	if c.SampleEvery > 0 {
		cfg.SampleEvery = c.SampleEvery
	}
	return cfg
}

func (bc BodyConfig) options() []physics.Option {
	return []physics.Option{
		physics.WithName(bc.Name),
		physics.WithPosition(dynamo.NewVector2(bc.Position[0], bc.Position[1])),
		physics.WithVelocity(dynamo.NewVector2(bc.Velocity[0], bc.Velocity[1])),
		physics.WithFixed(bc.Fixed),
	}
}
