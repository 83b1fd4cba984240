// Package physics holds the physical models behind the demonstrations.
//
// Closed-form models are plain functions over a sample grid (blackbody
// spectra, heat capacities, interference and diffraction patterns, Fourier
// series, wave packets). Models that need time stepping implement
// [dynamo.System]:
//
//   - [FluidOscillator]: viscous damping, ẍ = -(w0/Q) ẋ - w0² x
//   - [SolidFrictionOscillator]: Coulomb friction with sticking
//   - [Oscillator]: the nonlinear oscillator family (pendulum, van der Pol, ...)
//   - [Binet]: orbit equation of a central force, integrated in angle
//   - [Bloch]: spin precession, checked against the closed form of [NMR]
//   - [FieldLine]: finite-difference Klein-Gordon field driven at one end
//
// Invalid parameter combinations return errors wrapping
// [dynamo.ErrParameterBounds].
package physics
