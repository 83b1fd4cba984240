// Package demo defines the demonstration contract and hosts one
// implementation per physics topic.
//
// A demonstration turns slider values into a [figure.Figure]:
//
//	d, _ := demo.NewRegistry().Get("blackbody")
//	fig, err := demo.Evaluate(ctx, d, demo.Values{"T": 3000})
//
// Every Compute is a pure function of its values; the TUI recomputes on each
// slider change.
package demo

import (
	"context"
	"fmt"

	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/figure"
)

type Demo interface {
	Name() string
	Summary() string
	Params() []Param
	Compute(ctx context.Context, v Values) (*figure.Figure, error)
}

// Animated demos advance their values on every frame of the live view.
type Animated interface {
	Demo
	Frame(v Values) Values
}

// Evaluate fills in defaults for v, computes the figure and checks it.
func Evaluate(ctx context.Context, d Demo, v Values) (*figure.Figure, error) {
	resolved, err := Resolve(d.Params(), v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, err)
	}
	fig, err := d.Compute(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	if err := fig.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	return fig, nil
}

// advance moves the time slider by dt, wrapping to the start past its end.
func advance(params []Param, v Values, name string, dt float64) Values {
	out := v.Clone()
	for _, p := range params {
		if p.Name != name {
			continue
		}
		t := out[name] + dt
		if t > p.Max {
			t = p.Min
		}
		out[name] = t
	}
	return out
}
