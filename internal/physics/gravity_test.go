package physics

import (
	"math"
	"testing"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
)

func TestComputeGravityAcceleration_SurfaceGravity(t *testing.T) {
	earth := NewBody(earthMass, 0, 0, WithFixed(true))
	probe := NewBody(1, 0, 0, WithPosition(dynamo.NewVector2(0, 6.371e6)))

	acc := probe.ComputeGravityAcceleration([]Body{earth})

	if math.Abs(acc.Magnitude()-9.82) > 0.01 {
		t.Errorf("expected ~9.82 m/s^2, got %.4f", acc.Magnitude())
	}
	if acc.X() != 0 || acc.Y() >= 0 {
		t.Errorf("expected acceleration toward origin, got %v", acc)
	}
}

func TestComputeGravityAcceleration_Superposition(t *testing.T) {
	left := NewBody(1e10, 0, 0, WithPosition(dynamo.NewVector2(-10, 0)))
	right := NewBody(1e10, 0, 0, WithPosition(dynamo.NewVector2(10, 0)))
	above := NewBody(4e10, 0, 0, WithPosition(dynamo.NewVector2(0, 20)))
	b := NewBody(1, 0, 0)

	acc := b.ComputeGravityAcceleration([]Body{left, right, above})

	want := dynamo.G * 4e10 / 400
	if math.Abs(acc.X()) > 1e-15 {
		t.Errorf("horizontal pulls should cancel, got %v", acc.X())
	}
	if math.Abs(acc.Y()-want) > want*1e-12 {
		t.Errorf("expected %g upward, got %g", want, acc.Y())
	}
}

func TestComputeGravityAcceleration_NoPeers(t *testing.T) {
	b := NewBody(1, 0, 1, WithVelocity(dynamo.NewVector2(1, 1)))
	acc := b.ComputeGravityAcceleration(nil)
	if !acc.Equal(dynamo.Zero) {
		t.Errorf("expected zero acceleration, got %v", acc)
	}
	if !b.Velocity.Equal(dynamo.NewVector2(1, 1)) {
		t.Error("velocity should be untouched without a collision")
	}
}

func TestComputeGravityAcceleration_CollisionSuppressesAllPeers(t *testing.T) {
	far := NewBody(earthMass, 0, 0, WithPosition(dynamo.NewVector2(1e7, 0)))
	touching := NewBody(1, 0, 1, WithPosition(dynamo.NewVector2(0, 1.5)))
	b := NewBody(1, 0, 1, WithVelocity(dynamo.NewVector2(3, -2)))
	b.Acceleration = dynamo.NewVector2(7, 7)

	acc := b.ComputeGravityAcceleration([]Body{far, touching})

	if !acc.Equal(dynamo.Zero) {
		t.Errorf("expected zero acceleration on collision, got %v", acc)
	}
	if !b.Velocity.Equal(dynamo.Zero) || !b.Acceleration.Equal(dynamo.Zero) {
		t.Errorf("collision should stop the body, got vel %v acc %v", b.Velocity, b.Acceleration)
	}
}

func TestFirstCollision(t *testing.T) {
	b := NewBody(1, 0, 1)
	peers := []Body{
		NewBody(1, 0, 1, WithPosition(dynamo.NewVector2(10, 0))),
		NewBody(1, 0, 1, WithPosition(dynamo.NewVector2(1, 0))),
		NewBody(1, 0, 1, WithPosition(dynamo.NewVector2(0, 1))),
	}

	idx, hit := b.FirstCollision(peers)
	if !hit || idx != 1 {
		t.Errorf("FirstCollision() = %d, %v, want 1, true", idx, hit)
	}

	if _, hit := b.FirstCollision(peers[:1]); hit {
		t.Error("expected no collision")
	}
}

func TestComputeGravityForce(t *testing.T) {
	earth := NewBody(earthMass, 0, 0)
	b := NewBody(70, 0, 0, WithPosition(dynamo.NewVector2(6.371e6, 0)))

	acc := b.ComputeGravityAcceleration([]Body{earth})
	force := b.ComputeGravityForce([]Body{earth})

	if math.Abs(force.Magnitude()-70*acc.Magnitude()) > 1e-9 {
		t.Errorf("force %v is not mass * acceleration %v", force.Magnitude(), 70*acc.Magnitude())
	}
}

func TestPotentialDrop(t *testing.T) {
	earth := NewBody(earthMass, 0, 0)
	falling := NewBody(1, 0, 0,
		WithPosition(dynamo.NewVector2(0, 7e6)),
		WithVelocity(dynamo.NewVector2(0, -1000)))

	if drop := falling.PotentialDrop([]Body{earth}, 1); drop <= 0 {
		t.Errorf("falling body should lose potential, got %g", drop)
	}

	rising := falling
	rising.Velocity = rising.Velocity.Neg()
	if drop := rising.PotentialDrop([]Body{earth}, 1); drop >= 0 {
		t.Errorf("rising body should gain potential, got %g", drop)
	}
}

func TestEnergyAndMomentum(t *testing.T) {
	a := NewBody(2, 0, 0, WithVelocity(dynamo.NewVector2(3, 0)))
	b := NewBody(1, 0, 0, WithPosition(dynamo.NewVector2(10, 0)), WithVelocity(dynamo.NewVector2(-6, 0)))
	bodies := []Body{a, b}

	if ke := KineticEnergy(bodies); ke != 27 {
		t.Errorf("KineticEnergy() = %v, want 27", ke)
	}

	wantPE := -dynamo.G * 2 / 10
	if pe := PotentialEnergy(bodies); math.Abs(pe-wantPE) > 1e-25 {
		t.Errorf("PotentialEnergy() = %v, want %v", pe, wantPE)
	}

	if p := Momentum(bodies); p.Magnitude() != 0 {
		t.Errorf("Momentum() = %v, want zero", p)
	}
}
