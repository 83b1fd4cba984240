package physics

import (
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// LorentzFactor is 1/sqrt(1 - beta^2).
func LorentzFactor(beta float64) (float64, error) {
	if beta < 0 || beta >= 1 {
		return 0, dynamo.OutOfBounds("beta", beta, "must be in [0, 1)")
	}
	return 1 / math.Sqrt(1-beta*beta), nil
}

// KleinGordon is a wave hitting a dispersive region at z = 0: the incident
// part travels with wave number K, the transmitted part with KK.
type KleinGordon struct {
	W  float64
	K  float64
	KK float64
}

func DefaultKleinGordon() KleinGordon {
	return KleinGordon{W: 2 * math.Pi, K: 2 * math.Pi, KK: 0.8 * math.Pi}
}

// Incident is cos(w t - k z), sampled with the lookup table.
func (kg KleinGordon) Incident(zs []float64, t float64) []float64 {
	return kg.wave(zs, t, kg.K)
}

// Transmitted is cos(w t - kk z).
func (kg KleinGordon) Transmitted(zs []float64, t float64) []float64 {
	return kg.wave(zs, t, kg.KK)
}

func (kg KleinGordon) wave(zs []float64, t, k float64) []float64 {
	out := make([]float64, len(zs))
	for i, z := range zs {
		out[i] = dynamo.FastCos(kg.W*t - k*z)
	}
	return out
}

// PhaseVelocity of the transmitted wave, w/kk.
func (kg KleinGordon) PhaseVelocity() float64 { return kg.W / kg.KK }
