// Package automation runs demos without the TUI: scripted batches from a
// YAML scenario, sweeps over one slider, and randomized slider checks.
package automation

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/physdemo/internal/config"
	"github.com/san-kum/physdemo/internal/demo"
	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/export"
	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a list of demos to render:
//
//	name: optics
//	steps:
//	  - demo: fresnel
//	    preset: near
//	    output: {file: near.png}
//	  - demo: blackbody
//	    params: {T: 3000}
//	    archive: true
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Demo    string        `yaml:"demo"`
	Preset  string        `yaml:"preset,omitempty"`
	Params  demo.Values   `yaml:"params,omitempty"`
	Output  config.Output `yaml:"output,omitempty"`
	Archive bool          `yaml:"archive,omitempty"`
}

// Runner carries what every batch needs. Files are resolved against Dir;
// Store may be nil when no step archives.
type Runner struct {
	Registry *demo.Registry
	Store    *storage.Store
	Dir      string
	Logger   *log.Logger
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// NewLogger returns the progress logger used by the CLI.
func NewLogger(w io.Writer) *log.Logger {
	return log.New(w, "physdemo: ", 0)
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	return &scenario, nil
}

type StepResult struct {
	Demo   string
	Values demo.Values
	Figure *figure.Figure
	File   string
	RunID  string
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the steps completed so far.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		r.logf("step %d/%d: %s", i+1, len(scenario.Steps), step.Demo)

		res, err := r.runStep(ctx, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runStep(ctx context.Context, step ScenarioStep) (StepResult, error) {
	d, err := r.Registry.Get(step.Demo)
	if err != nil {
		return StepResult{}, err
	}
	file := &config.File{Demo: step.Demo, Preset: step.Preset, Params: step.Params}
	values, err := config.Resolve(d, "", file, nil)
	if err != nil {
		return StepResult{}, err
	}
	fig, err := demo.Evaluate(ctx, d, values)
	if err != nil {
		return StepResult{}, err
	}

	res := StepResult{Demo: step.Demo, Values: values, Figure: fig}
	if step.Output.File != "" {
		res.File = r.path(step.Output.File)
		if err := export.SavePlot(fig, res.File, step.Output.Width, step.Output.Height); err != nil {
			return res, err
		}
		r.logf("wrote %s", res.File)
	}
	if step.Archive {
		if r.Store == nil {
			return res, fmt.Errorf("%s: archive requested without a store", step.Demo)
		}
		res.RunID, err = r.Store.Save(step.Demo, values, fig)
		if err != nil {
			return res, err
		}
		r.logf("archived %s", res.RunID)
	}
	return res, nil
}

func (r *Runner) path(name string) string {
	if r.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.Dir, name)
}

// ParameterSweep evaluates a demo at Steps evenly spaced values of Param.
// Base overrides the other sliders. With Output set, each point is
// rendered to Output with the index inserted before the extension.
type ParameterSweep struct {
	Demo   string
	Param  string
	Min    float64
	Max    float64
	Steps  int
	Base   demo.Values
	Output string
}

type SweepResult struct {
	Value  float64
	Notes  []string
	Series int
	File   string
}

// RunSweep evaluates the sweep points in parallel; results keep sweep
// order.
func (r *Runner) RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.Steps < 1 {
		return nil, dynamo.OutOfBounds("steps", float64(sweep.Steps), "need at least one sweep point")
	}
	d, err := r.Registry.Get(sweep.Demo)
	if err != nil {
		return nil, err
	}
	if _, err := demo.Resolve(d.Params(), sweep.Base, demo.Values{sweep.Param: sweep.Min}); err != nil {
		return nil, fmt.Errorf("%s: %w", sweep.Demo, err)
	}

	values := make([]float64, sweep.Steps)
	for i := range values {
		if sweep.Steps == 1 {
			values[i] = sweep.Min
			continue
		}
		values[i] = sweep.Min + float64(i)*(sweep.Max-sweep.Min)/float64(sweep.Steps-1)
	}

	results := make([]SweepResult, sweep.Steps)
	err = dynamo.ParallelFor(ctx, sweep.Steps, 1, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			inst, err := r.Registry.Get(sweep.Demo)
			if err != nil {
				return err
			}
			v := sweep.Base.Clone()
			v[sweep.Param] = values[i]
			fig, err := demo.Evaluate(ctx, inst, v)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sweep.Param, values[i], err)
			}
			res := SweepResult{Value: values[i], Notes: fig.Notes}
			for _, p := range fig.Panels {
				res.Series += len(p.Series)
			}
			if sweep.Output != "" {
				res.File = r.path(indexed(sweep.Output, i))
				if err := export.SavePlot(fig, res.File, 0, 0); err != nil {
					return err
				}
			}
			results[i] = res
			r.logf("sweep %d/%d: %s=%.4g", i+1, sweep.Steps, sweep.Param, values[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// indexed turns out.png into out_003.png.
func indexed(name string, i int) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(name, ext), i, ext)
}

// MonteCarloConfig evaluates a demo at random slider positions drawn
// uniformly over each slider's range (log-uniformly for log sliders).
type MonteCarloConfig struct {
	Demo      string
	NumTrials int
	Seed      int64
}

type MonteCarloResult struct {
	TrialID int
	Values  demo.Values
	Err     error
	// Finite is false when some series point is NaN or infinite.
	Finite bool
}

func (r *Runner) RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	d, err := r.Registry.Get(cfg.Demo)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, err)
		}
		v := RandomValues(rng, d.Params())
		fig, err := demo.Evaluate(ctx, d, v)
		res := MonteCarloResult{TrialID: trial, Values: v, Err: err}
		if err == nil {
			res.Finite = allFinite(fig)
		}
		results = append(results, res)

		if (trial+1)%10 == 0 {
			r.logf("monte carlo: %d/%d trials complete", trial+1, cfg.NumTrials)
		}
	}
	return results, nil
}

func RandomValues(rng *rand.Rand, params []demo.Param) demo.Values {
	v := make(demo.Values, len(params))
	for _, p := range params {
		u := rng.Float64()
		if p.Log && p.Min > 0 {
			lo, hi := math.Log10(p.Min), math.Log10(p.Max)
			v[p.Name] = p.Clamp(math.Pow(10, lo+u*(hi-lo)))
			continue
		}
		v[p.Name] = p.Clamp(p.Min + u*(p.Max-p.Min))
	}
	return v
}

func allFinite(fig *figure.Figure) bool {
	for _, p := range fig.Panels {
		for _, s := range p.Series {
			for i := range s.X {
				if math.IsNaN(s.X[i]) || math.IsInf(s.X[i], 0) || math.IsNaN(s.Y[i]) || math.IsInf(s.Y[i], 0) {
					return false
				}
			}
		}
	}
	return true
}

// MonteCarloStats counts trials that failed with an error and trials that
// produced non-finite points.
func MonteCarloStats(results []MonteCarloResult) (failed, nonFinite int) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case !r.Finite:
			nonFinite++
		}
	}
	return
}
