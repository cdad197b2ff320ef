package physics

import (
	"math"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
)

// DeriveRelative creates a body whose position and velocity are offsets
// from ref. WithPosition and WithVelocity give the offsets; both default to
// zero, so the new body starts on top of ref and moving with it.
func DeriveRelative(ref Body, mass, charge, radius float64, opts ...Option) Body {
	b := NewBody(mass, charge, radius, opts...)
	b.Position = b.Position.Add(ref.Position)
	if !b.Fixed {
		b.Velocity = b.Velocity.Add(ref.Velocity)
	}
	return b
}

// DeriveCircularOrbit places a body altitude above ref's surface on ref's
// +x side, moving along +y at the circular orbital speed. ref's own
// position and velocity are added on top, so a moving reference carries
// its satellite along. No guard for ref.Radius+altitude <= 0.
func DeriveCircularOrbit(ref Body, mass, charge, radius, altitude float64) Body {
	r := ref.Radius + altitude
	return Body{
		Mass:     mass,
		Charge:   charge,
		Radius:   radius,
		Position: dynamo.NewVector2(r, 0).Add(ref.Position),
		Velocity: dynamo.NewVector2(0, CircularSpeed(ref.Mass, r)).Add(ref.Velocity),
	}
}

// CircularSpeed is sqrt(G*M/r).
func CircularSpeed(mass, r float64) float64 {
	return math.Sqrt(dynamo.G * mass / r)
}

// OrbitalPeriod is the period of a circular orbit of radius r around mass.
func OrbitalPeriod(mass, r float64) float64 {
	return 2 * math.Pi * math.Sqrt(r*r*r/(dynamo.G*mass))
}
