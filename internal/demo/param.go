package demo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Param describes one slider.
type Param struct {
	Name    string  `json:"name" yaml:"name"`
	Label   string  `json:"label" yaml:"label"`
	Unit    string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Default float64 `json:"default" yaml:"default"`
	// Step is the increment of one key press, in decades for Log sliders.
	Step    float64 `json:"step" yaml:"step"`
	Integer bool    `json:"integer,omitempty" yaml:"integer,omitempty"`
	Log     bool    `json:"log,omitempty" yaml:"log,omitempty"`
}

// Clamp brings v into [Min, Max], rounding integer sliders.
func (p Param) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Default
	}
	if p.Integer {
		v = math.Round(v)
	}
	return math.Max(p.Min, math.Min(p.Max, v))
}

// Stepped moves v by n steps and clamps the result.
func (p Param) Stepped(v float64, n int) float64 {
	if p.Log && v > 0 {
		return p.Clamp(v * math.Pow(10, float64(n)*p.Step))
	}
	return p.Clamp(v + float64(n)*p.Step)
}

func (p Param) Format(v float64) string {
	if p.Integer {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// Values holds one position per slider.
type Values map[string]float64

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

func (v Values) Int(name string) int {
	return int(math.Round(v[name]))
}

func (v Values) Bool(name string) bool {
	return v[name] >= 0.5
}

func Defaults(params []Param) Values {
	out := make(Values, len(params))
	for _, p := range params {
		out[p.Name] = p.Default
	}
	return out
}

// Resolve layers overrides on top of the defaults, later layers winning,
// and clamps every value. Names that are not sliders are rejected.
func Resolve(params []Param, layers ...Values) (Values, error) {
	out := Defaults(params)
	byName := make(map[string]Param, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}
	for _, layer := range layers {
		for name, x := range layer {
			p, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("unknown param: %s (available: %v)", name, ParamNames(params))
			}
			out[name] = p.Clamp(x)
		}
	}
	return out, nil
}

// ParamNames returns the slider names sorted.
func ParamNames(params []Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

// ParseAssignments reads name=value pairs as given to --set.
func ParseAssignments(pairs []string) (Values, error) {
	out := make(Values, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid assignment %q, want name=value", pair)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		out[strings.TrimSpace(name)] = x
	}
	return out, nil
}
