package metrics

import "github.com/18Orion/ParticleInteractionSimulator/internal/sim"

// Defaults returns the metrics attached to every recorded run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(),
		NewMinSeparation(),
		NewMaxSpeed(),
	}
}
