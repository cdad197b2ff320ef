package metrics

import (
	"math"

	"github.com/18Orion/ParticleInteractionSimulator/internal/physics"
)

// MinSeparation is the closest surface-to-surface approach between any two
// bodies over the run. Zero or less means they touched.
type MinSeparation struct {
	name    string
	closest float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{name: "min_separation", closest: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return m.name }

func (m *MinSeparation) Observe(t float64, bodies []physics.Body) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			gap := bodies[i].Position.Distance(bodies[j].Position) - bodies[i].Radius - bodies[j].Radius
			if gap < m.closest {
				m.closest = gap
			}
		}
	}
}

func (m *MinSeparation) Value() float64 { return m.closest }

func (m *MinSeparation) Reset() { m.closest = math.Inf(1) }

// MaxSpeed is the fastest any body moved during the run.
type MaxSpeed struct {
	name  string
	speed float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(t float64, bodies []physics.Body) {
	for i := range bodies {
		m.speed = math.Max(m.speed, bodies[i].Speed())
	}
}

func (m *MaxSpeed) Value() float64 { return m.speed }

func (m *MaxSpeed) Reset() { m.speed = 0 }
