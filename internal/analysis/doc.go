// Package analysis provides spectral and phase-space tools shared by the
// demonstrations.
//
//   - [Spectrum], [AmplitudeSpectrum], [BandLimit], [ApplyTransfer]: FFT based
//     signal analysis
//   - [PhasePortrait], [StroboscopicSection]: phase-space views of a run
//   - [LyapunovExponent]: largest Lyapunov exponent by trajectory separation
package analysis
