// Package physics models point masses under mutual gravity.
//
//   - [Body]: mass, radius, kinematic state and the fixed flag
//   - [Body.ComputeGravityAcceleration]: pairwise gravity with the
//     stop-on-contact collision rule
//   - [Body.Integrate]: semi-implicit Euler step
//   - [DeriveRelative], [DeriveCircularOrbit]: seeding bodies around others
//
// # Fixed Bodies
//
// A fixed body pulls on others but never moves. The driver in package sim
// does not compute its acceleration at all, and Integrate ignores it.
//
//	earth := physics.NewBody(5.972e24, 0, 6.371e6, physics.WithFixed(true))
//	iss := physics.DeriveCircularOrbit(earth, 4.2e5, 0, 50, 4.08e5)
package physics
