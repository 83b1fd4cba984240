package demo

import (
	"fmt"
	"sort"
)

type Registry struct {
	demos map[string]func() Demo
}

func NewRegistry() *Registry {
	r := &Registry{demos: make(map[string]func() Demo)}

	r.Register(func() Demo { return &FourierSquare{} })
	r.Register(func() Demo { return &FourierTriangle{} })
	r.Register(func() Demo { return &FourierSpectrum{} })
	r.Register(func() Demo { return &FabryPerot{} })
	r.Register(func() Demo { return &Grating{} })
	r.Register(func() Demo { return &Blackbody{} })
	r.Register(func() Demo { return &HeatCapacity{} })
	r.Register(func() Demo { return &Fresnel{} })
	r.Register(func() Demo { return &NMR{} })
	r.Register(func() Demo { return &WavePacket{} })
	r.Register(func() Demo { return &Orbits{} })
	r.Register(func() Demo { return &DampedOscillator{} })
	r.Register(func() Demo { return &Pendulum{} })
	r.Register(func() Demo { return &Filter{} })
	r.Register(func() Demo { return &KleinGordon{} })
	r.Register(func() Demo { return &Lorentz{} })

	return r
}

// Register adds a demo under its own name, replacing any previous one.
func (r *Registry) Register(fn func() Demo) {
	r.demos[fn().Name()] = fn
}

func (r *Registry) Get(name string) (Demo, error) {
	fn, ok := r.demos[name]
	if !ok {
		return nil, fmt.Errorf("unknown demo: %s (available: %v)", name, r.Names())
	}
	return fn(), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.demos))
	for name := range r.demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a fresh instance of every demo, sorted by name.
func (r *Registry) All() []Demo {
	names := r.Names()
	out := make([]Demo, len(names))
	for i, name := range names {
		out[i] = r.demos[name]()
	}
	return out
}
