package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
	"github.com/18Orion/ParticleInteractionSimulator/internal/physics"
)

// collisionLog collects collisions for a single Record call.
type collisionLog struct {
	collisions []Collision
}

func (c *collisionLog) OnTick(float64, []physics.Body) {}
func (c *collisionLog) OnCollision(col Collision)       { c.collisions = append(c.collisions, col) }

// Record advances the world as cfg describes and samples its state every
// cfg.SampleEvery ticks, plus the starting and final state. ctx is only
// checked between ticks.
func (w *World) Record(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}

	for _, m := range w.metrics {
		m.Reset()
	}
	log := &collisionLog{}
	w.observers = append(w.observers, log)
	defer w.removeObserver(log)

	result := &Result{
		Metrics: make(map[string]float64),
	}
	sample := func() {
		result.Times = append(result.Times, w.elapsed)
		result.Frames = append(result.Frames, w.Bodies())
	}

	start := w.elapsed
	initialEnergy := physics.TotalEnergy(w.bodies)
	sample()

	done := func() bool {
		if cfg.Ticks > 0 {
			return result.TicksTaken >= cfg.Ticks
		}
		return w.elapsed-start >= cfg.Duration
	}

	var runErr error
	for !done() {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		w.AdvanceOneTick()
		result.TicksTaken++

		if cfg.ValidateState {
			if i := w.firstInvalid(); i >= 0 {
				runErr = &dynamo.SimulationError{Tick: w.ticks, Time: w.elapsed, Body: i, Wrapped: dynamo.ErrInvalidState}
				break
			}
		}
		if result.TicksTaken%every == 0 {
			sample()
		}
	}

	if n := len(result.Times); n == 0 || result.Times[n-1] != w.elapsed {
		sample()
	}

	finalEnergy := physics.TotalEnergy(w.bodies)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Collisions = log.collisions

	w.logger.Info("run finished", "ticks", result.TicksTaken, "elapsed", w.elapsed,
		"samples", len(result.Times), "collisions", len(result.Collisions))
	return result, runErr
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", cfg.Ticks)
	}
	if cfg.Ticks == 0 && (!(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0)) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func (w *World) firstInvalid() int {
	for i := range w.bodies {
		if !w.bodies[i].IsFinite() {
			return i
		}
	}
	return -1
}

func (w *World) removeObserver(o Observer) {
	for i, obs := range w.observers {
		if obs == o {
			w.observers = append(w.observers[:i], w.observers[i+1:]...)
			return
		}
	}
}
