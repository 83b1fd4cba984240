// Package dynamo provides the numerical core shared by the demonstrations.
//
// It defines the vector [State], the [System] interface for first-order ODEs
// (dX/dt = f(X, t)), the [Integrator] contract implemented by the integrators
// package, and a [Simulator] that drives fixed or adaptive time stepping.
//
// # Example
//
//	osc := physics.NewFluidOscillator(math.Pi, 5)
//	sim := dynamo.New(osc, integrators.NewRK4())
//	res, err := sim.Run(ctx, dynamo.State{8, 0}, dynamo.Config{Dt: 0.01, Duration: 10})
//
// Systems may additionally implement [Constrained] to project the state
// after every step, [Terminator] to stop a run early, or [Hamiltonian] to
// have energy drift reported in the [Result].
//
// Simulator instances are not safe for concurrent use. Independent runs can
// be spread over goroutines with [ParallelFor].
package dynamo
