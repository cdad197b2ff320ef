package sim

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
	"github.com/18Orion/ParticleInteractionSimulator/internal/physics"
)

// World owns an ordered set of bodies and advances them in fixed ticks.
// Insertion order is the index order callers address bodies by.
//
// A World is not safe for concurrent use.
type World struct {
	tickDuration float64
	elapsed      float64
	ticks        int
	bodies       []physics.Body
	next         []physics.Body
	peers        []physics.Body
	observers    []Observer
	metrics      []Metric
	logger       *slog.Logger
}

type Option func(*World)

func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// New creates an empty world stepping tickDuration seconds per tick.
func New(tickDuration float64, opts ...Option) (*World, error) {
	if !(tickDuration > 0) || math.IsInf(tickDuration, 0) {
		return nil, fmt.Errorf("%w: got %g", dynamo.ErrInvalidTick, tickDuration)
	}
	w := &World{
		tickDuration: tickDuration,
		bodies:       make([]physics.Body, 0),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }
func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }

// AddBody appends b and returns its index.
func (w *World) AddBody(b physics.Body) int {
	if b.Fixed {
		b.Velocity = dynamo.Zero
		b.Acceleration = dynamo.Zero
	}
	w.bodies = append(w.bodies, b)
	return len(w.bodies) - 1
}

func (w *World) Len() int              { return len(w.bodies) }
func (w *World) TickDuration() float64 { return w.tickDuration }
func (w *World) ElapsedTime() float64  { return w.elapsed }
func (w *World) Ticks() int            { return w.ticks }

// Body returns a copy of the body at index i.
func (w *World) Body(i int) (physics.Body, error) {
	if i < 0 || i >= len(w.bodies) {
		return physics.Body{}, fmt.Errorf("%w: %d (have %d)", dynamo.ErrBodyIndex, i, len(w.bodies))
	}
	return w.bodies[i], nil
}

// Bodies returns a copy of every body in index order.
func (w *World) Bodies() []physics.Body {
	out := make([]physics.Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// AdvanceOneTick moves the clock by one tick, computes every body's
// acceleration from the state at the start of the tick, then integrates
// all of them. Accelerations are written to a separate buffer so no force
// calculation sees a position updated in the same tick.
func (w *World) AdvanceOneTick() {
	w.elapsed += w.tickDuration
	w.ticks++

	n := len(w.bodies)
	if cap(w.next) < n {
		w.next = make([]physics.Body, n)
		w.peers = make([]physics.Body, 0, n)
	}
	next := w.next[:n]
	copy(next, w.bodies)

	var collisions []Collision
	for i := range next {
		if next[i].Fixed {
			continue
		}
		peers := w.peersOf(i)
		if k, hit := next[i].FirstCollision(peers); hit {
			other := k
			if k >= i {
				other = k + 1
			}
			collisions = append(collisions, Collision{Tick: w.ticks, Time: w.elapsed, Body: i, Other: other})
		}
		next[i].Acceleration = next[i].ComputeGravityAcceleration(peers)
	}

	for i := range next {
		next[i].Integrate(w.tickDuration)
	}

	w.bodies, w.next = next, w.bodies

	for _, c := range collisions {
		w.logger.Debug("collision", "tick", c.Tick, "time", c.Time, "body", c.Body, "other", c.Other)
		for _, o := range w.observers {
			if co, ok := o.(CollisionObserver); ok {
				co.OnCollision(c)
			}
		}
	}
	w.notify()
}

// peersOf returns the pre-tick state of every body except i. The returned
// slice is reused on the next call.
func (w *World) peersOf(i int) []physics.Body {
	w.peers = append(w.peers[:0], w.bodies[:i]...)
	w.peers = append(w.peers, w.bodies[i+1:]...)
	return w.peers
}

func (w *World) notify() {
	if len(w.observers) == 0 && len(w.metrics) == 0 {
		return
	}
	snapshot := w.Bodies()
	for _, m := range w.metrics {
		m.Observe(w.elapsed, snapshot)
	}
	for _, o := range w.observers {
		o.OnTick(w.elapsed, snapshot)
	}
}

// AdvanceTicks calls AdvanceOneTick n times. Negative n does nothing.
func (w *World) AdvanceTicks(n int) {
	for i := 0; i < n; i++ {
		w.AdvanceOneTick()
	}
}

// AdvanceSeconds ticks until at least seconds of simulated time have
// passed. The last tick may overshoot by up to one tick duration.
func (w *World) AdvanceSeconds(seconds float64) {
	start := w.elapsed
	for w.elapsed-start < seconds {
		w.AdvanceOneTick()
	}
}
