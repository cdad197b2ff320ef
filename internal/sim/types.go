package sim

import (
	"github.com/18Orion/ParticleInteractionSimulator/internal/physics"
)

// Observer is called after every tick with the bodies' new state.
// The slice is a copy and may be retained.
type Observer interface {
	OnTick(t float64, bodies []physics.Body)
}

// CollisionObserver is notified of each body stopped by contact.
type CollisionObserver interface {
	OnCollision(c Collision)
}

type Metric interface {
	Name() string
	Observe(t float64, bodies []physics.Body)
	Value() float64
	Reset()
}

// Collision records that Body was stopped by contact with Other.
type Collision struct {
	Tick  int     `json:"tick"`
	Time  float64 `json:"time"`
	Body  int     `json:"body"`
	Other int     `json:"other"`
}

// RunConfig controls Record. Ticks takes precedence over Duration when set.
type RunConfig struct {
	Duration      float64
	Ticks         int
	SampleEvery   int
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Duration:      10.0,
		SampleEvery:   1,
		ValidateState: true,
	}
}

type Result struct {
	Times       []float64
	Frames      [][]physics.Body
	Metrics     map[string]float64
	Collisions  []Collision
	EnergyDrift float64
	TicksTaken  int
}
