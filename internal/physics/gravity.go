package physics

import "github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"

// ComputeGravityAcceleration returns the gravitational acceleration peers
// exert on b. peers must not contain b itself.
//
// If b touches any peer the result is the zero vector, and b's velocity and
// acceleration are zeroed: one collision cancels every peer's pull for the
// tick, not just the colliding one's.
func (b *Body) ComputeGravityAcceleration(peers []Body) dynamo.Vector2 {
	if _, hit := b.FirstCollision(peers); hit {
		b.Velocity = dynamo.Zero
		b.Acceleration = dynamo.Zero
		return dynamo.Zero
	}

	total := dynamo.Zero
	for i := range peers {
		total = total.Add(b.accelerationFrom(peers[i]))
	}
	return total
}

// ComputeGravityForce is ComputeGravityAcceleration scaled by b's mass.
func (b *Body) ComputeGravityForce(peers []Body) dynamo.Vector2 {
	return b.ComputeGravityAcceleration(peers).Scale(b.Mass)
}

func (b Body) accelerationFrom(peer Body) dynamo.Vector2 {
	d := b.Position.DistanceVector(peer.Position)
	r := d.Magnitude()
	return d.Unit().Scale(dynamo.G * peer.Mass / (r * r))
}

// GravitationalPotential is the potential at point from the given masses,
// in J/kg.
func GravitationalPotential(at dynamo.Vector2, peers []Body) float64 {
	phi := 0.0
	for i := range peers {
		phi -= dynamo.G * peers[i].Mass / at.Distance(peers[i].Position)
	}
	return phi
}

// PotentialDrop is the fall in potential per unit mass b sees when drifting
// for dt at its current velocity through the field of peers.
func (b Body) PotentialDrop(peers []Body, dt float64) float64 {
	next := b.Position.Add(b.Velocity.Scale(dt))
	return GravitationalPotential(b.Position, peers) - GravitationalPotential(next, peers)
}
