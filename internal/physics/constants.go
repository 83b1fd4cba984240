package physics

// Physical constants, SI units.
const (
	Planck        = 6.6260693e-34 // J s
	Boltzmann     = 1.3806505e-23 // J/K
	SpeedOfLight  = 299792458.0   // m/s
	Gravitational = 6.6742e-11    // m^3 kg^-1 s^-2
	SolarMass     = 1.989e30      // kg
	StandardGrav  = 9.81          // m/s^2

	// ProtonGyromagnetic is the proton gyromagnetic ratio in rad/(s T).
	ProtonGyromagnetic = 2.675e8

	// WienNuCoefficient x solves 3(1 - e^-x) = x; nu_max = x kT/h.
	WienNuCoefficient = 2.821439372122079
	// WienLambdaConstant is b in lambda_max = b/T, m K.
	WienLambdaConstant = 2.897771955e-3
)
