package physics

import (
	"fmt"
	"math"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
)

// Body is a point mass. Radius only matters for collision tests and Charge
// is carried but not read by any force yet.
type Body struct {
	Name         string
	Mass         float64
	Charge       float64
	Radius       float64
	Position     dynamo.Vector2
	Velocity     dynamo.Vector2
	Acceleration dynamo.Vector2
	Fixed        bool
}

// Option sets optional kinematic state on a new body.
type Option func(*Body)

func WithPosition(p dynamo.Vector2) Option { return func(b *Body) { b.Position = p } }
func WithVelocity(v dynamo.Vector2) Option { return func(b *Body) { b.Velocity = v } }
func WithFixed(fixed bool) Option          { return func(b *Body) { b.Fixed = fixed } }
func WithName(name string) Option          { return func(b *Body) { b.Name = name } }

// NewBody creates a body at rest at the origin unless options say otherwise.
func NewBody(mass, charge, radius float64, opts ...Option) Body {
	b := Body{
		Mass:   mass,
		Charge: charge,
		Radius: radius,
	}
	for _, opt := range opts {
		opt(&b)
	}
	if b.Fixed {
		b.Velocity = dynamo.Zero
	}
	return b
}

// IsCollidingWith reports whether the two bodies touch or overlap.
func (b Body) IsCollidingWith(other Body) bool {
	return b.Position.Distance(other.Position) <= b.Radius+other.Radius
}

// FirstCollision returns the index of the first peer b collides with.
func (b Body) FirstCollision(peers []Body) (int, bool) {
	for i := range peers {
		if b.IsCollidingWith(peers[i]) {
			return i, true
		}
	}
	return -1, false
}

// Integrate advances b by dt with semi-implicit Euler: velocity first, then
// position from the updated velocity. Acceleration must already hold the
// value for this tick. Fixed bodies do not move.
func (b *Body) Integrate(dt float64) {
	if b.Fixed {
		return
	}
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// Validate checks the invariants the physics core itself does not enforce.
func (b Body) Validate() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return fmt.Errorf("%w: %q has mass %g", dynamo.ErrInvalidMass, b.Name, b.Mass)
	}
	if b.Radius < 0 || math.IsNaN(b.Radius) {
		return fmt.Errorf("%w: %q has radius %g", dynamo.ErrInvalidRadius, b.Name, b.Radius)
	}
	if !b.IsFinite() {
		return fmt.Errorf("%w: %q", dynamo.ErrInvalidState, b.Name)
	}
	return nil
}

func (b Body) IsFinite() bool {
	return b.Position.IsFinite() && b.Velocity.IsFinite() && b.Acceleration.IsFinite()
}

func (b Body) Speed() float64 { return b.Velocity.Magnitude() }

func (b Body) String() string {
	name := b.Name
	if name == "" {
		name = "body"
	}
	return fmt.Sprintf("%s pos(%s) vel(%s) acc(%s)", name, b.Position, b.Velocity, b.Acceleration)
}
