package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
	"github.com/18Orion/ParticleInteractionSimulator/internal/physics"
	"github.com/18Orion/ParticleInteractionSimulator/internal/sim"
)

var _ = Describe("World", func() {
	var w *sim.World

	BeforeEach(func() {
		var err error
		w, err = sim.New(1.0)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("symmetric pair", func() {
		It("stays mirrored through the origin", func() {
			w.AddBody(physics.NewBody(1e12, 0, 0.1, physics.WithPosition(dynamo.NewVector2(-50, 20))))
			w.AddBody(physics.NewBody(1e12, 0, 0.1, physics.WithPosition(dynamo.NewVector2(50, -20))))

			for i := 0; i < 5; i++ {
				w.AdvanceOneTick()
				a, _ := w.Body(0)
				b, _ := w.Body(1)
				Expect(a.Position.X()).To(BeNumerically("~", -b.Position.X(), 1e-12))
				Expect(a.Position.Y()).To(BeNumerically("~", -b.Position.Y(), 1e-12))
				Expect(a.Velocity.X()).To(BeNumerically(">", 0))
			}
		})
	})

	Describe("circular orbit seeding", func() {
		const (
			earthMass   = 5.972e24
			earthRadius = 6.371e6
			altitude    = 4.0e5
		)

		It("returns to its start after one period", func() {
			earth := physics.NewBody(earthMass, 0, earthRadius, physics.WithFixed(true))
			sat := physics.DeriveCircularOrbit(earth, 1000, 0, 10, altitude)
			w.AddBody(earth)
			idx := w.AddBody(sat)

			period := physics.OrbitalPeriod(earthMass, earthRadius+altitude)
			w.AdvanceTicks(int(math.Round(period / w.TickDuration())))

			got, err := w.Body(idx)
			Expect(err).NotTo(HaveOccurred())

			r := earthRadius + altitude
			Expect(got.Position.Distance(sat.Position)).To(BeNumerically("<", 0.01*r))
			Expect(got.Position.Magnitude()).To(BeNumerically("~", r, 0.005*r))
		})

		It("inherits a moving reference's velocity", func() {
			ref := physics.NewBody(earthMass, 0, earthRadius,
				physics.WithVelocity(dynamo.NewVector2(1000, 0)))
			sat := physics.DeriveCircularOrbit(ref, 1, 0, 1, altitude)

			Expect(sat.Velocity.X()).To(Equal(1000.0))
			Expect(sat.Velocity.Y()).To(BeNumerically("~", physics.CircularSpeed(earthMass, earthRadius+altitude), 1e-9))
		})
	})

	Describe("fixed bodies", func() {
		It("are bit-identical across ticks whatever the peers do", func() {
			fixed := physics.NewBody(10, 0, 3, physics.WithPosition(dynamo.NewVector2(7, 7)), physics.WithFixed(true))
			w.AddBody(physics.NewBody(5.972e24, 0, 1, physics.WithPosition(dynamo.NewVector2(7, 100))))
			w.AddBody(fixed)
			w.AddBody(physics.NewBody(1, 0, 5, physics.WithPosition(dynamo.NewVector2(9, 7))))

			w.AdvanceTicks(25)

			got, _ := w.Body(1)
			Expect(got).To(Equal(fixed))
		})

		It("still pull on others", func() {
			w.AddBody(physics.NewBody(5.972e24, 0, 0, physics.WithFixed(true)))
			w.AddBody(physics.NewBody(1, 0, 0, physics.WithPosition(dynamo.NewVector2(7e6, 0))))

			w.AdvanceOneTick()

			probe, _ := w.Body(1)
			Expect(probe.Velocity.X()).To(BeNumerically("<", 0))
		})
	})

	Describe("clock", func() {
		It("advances by exactly one tick duration per step", func() {
			for i := 1; i <= 10; i++ {
				w.AdvanceOneTick()
				Expect(w.Ticks()).To(Equal(i))
				Expect(w.ElapsedTime()).To(Equal(float64(i)))
			}
		})
	})
})
