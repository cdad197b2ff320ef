// Package dynamo provides the primitives shared by the simulator:
//
//   - [Vector2]: immutable 2-D vector with a cached magnitude
//   - [G]: the gravitational constant
//   - sentinel errors and [SimulationError]
//
// # Example
//
//	a := dynamo.NewVector2(3, 4)
//	a.Magnitude() // 5
//	a.DistanceVector(dynamo.Zero) // -3, -4
package dynamo
