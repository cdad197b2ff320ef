package physics

import "github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"

func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for i := range bodies {
		v := bodies[i].Velocity.Magnitude()
		ke += 0.5 * bodies[i].Mass * v * v
	}
	return ke
}

// PotentialEnergy sums -G*mi*mj/r over every pair.
func PotentialEnergy(bodies []Body) float64 {
	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[i].Position.Distance(bodies[j].Position)
			pe -= dynamo.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

func TotalEnergy(bodies []Body) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies)
}

// Momentum is the total linear momentum of the system.
func Momentum(bodies []Body) dynamo.Vector2 {
	p := dynamo.Zero
	for i := range bodies {
		p = p.Add(bodies[i].Velocity.Scale(bodies[i].Mass))
	}
	return p
}
