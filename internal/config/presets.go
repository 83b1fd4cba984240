package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/physdemo/internal/demo"
)

// Presets holds named slider settings per demo.
var Presets = map[string]map[string]demo.Values{
	"blackbody": {
		"sun":          {"T": 5800},
		"incandescent": {"T": 2700},
		"cmb":          {"T": 2.725},
	},
	"wavepacket": {
		"vacuum":  {"dispersion": 0, "probability": 0},
		"plasma":  {"dispersion": 1, "fc": 40},
		"glass":   {"dispersion": 2, "B": 0.5},
		"quantum": {"dispersion": 3, "probability": 1},
	},
	"fresnel": {
		"near": {"p": -2, "a": 2},
		"far":  {"p": 1, "a": 1},
	},
	"fabry-perot": {
		"low-finesse":  {"R": 0.2},
		"high-finesse": {"R": 0.95},
	},
	"grating": {
		"double-slit": {"N": 2, "a": 20, "d": 1},
		"grating":     {"N": 10, "a": 20, "d": 1},
	},
	"damped-oscillator": {
		"underdamped": {"Q": 10},
		"overdamped":  {"Q": 0.3},
		"sticky":      {"mu": 1.5},
	},
	"pendulum": {
		"harmonic":    {"kind": 0, "integrator": 0},
		"van-der-pol": {"kind": 4},
		"chaotic":     {"kind": 5, "integrator": 0},
		"euler-drift": {"kind": 0, "integrator": 2},
	},
	"filter": {
		"smooth": {"fc": 5},
		"open":   {"fc": 200},
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(demoName, name string) (demo.Values, error) {
	presets, ok := Presets[demoName]
	if !ok {
		return nil, fmt.Errorf("no presets for %s", demoName)
	}
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets(demoName))
	}
	return p.Clone(), nil
}

// ListPresets returns the preset names of a demo sorted, or nil if it has
// none.
func ListPresets(demoName string) []string {
	presets, ok := Presets[demoName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
