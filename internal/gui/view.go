// Package gui shows a demonstration in a desktop window: one slider per
// parameter next to the rendered figure, the way the lecture scripts
// present their plots.
package gui

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/san-kum/physdemo/internal/demo"
	"github.com/san-kum/physdemo/internal/export"
	"github.com/san-kum/physdemo/internal/figure"
)

type Options struct {
	// plot size in pixels
	Width  int
	Height int
	FPS    int
	// SnapshotDir receives <demo>_<unix>.png files.
	SnapshotDir string
	Logger      *log.Logger
	// Render rasterizes a figure; export.Image when nil.
	Render func(fig *figure.Figure, width, height int) (image.Image, error)
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 720
	}
	if o.Height <= 0 {
		o.Height = 540
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.SnapshotDir == "" {
		o.SnapshotDir = "."
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Render == nil {
		o.Render = export.Image
	}
	return o
}

type control struct {
	param  demo.Param
	slider *widget.Slider
	value  *widget.Label
}

// View holds the widgets of one demo window.
type View struct {
	ctx  context.Context
	demo demo.Demo
	opts Options

	mu       sync.Mutex
	values   demo.Values
	fig      *figure.Figure
	controls []control

	plot   *canvas.Image
	notes  *widget.Label
	status *widget.Label
	play   *widget.Button
	stop   chan struct{}

	Content fyne.CanvasObject
}

func NewView(ctx context.Context, d demo.Demo, initial demo.Values, opts Options) (*View, error) {
	values, err := demo.Resolve(d.Params(), initial)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	v := &View{
		ctx:    ctx,
		demo:   d,
		opts:   opts.withDefaults(),
		values: values,
		notes:  widget.NewLabel(""),
		status: widget.NewLabel(""),
	}
	v.notes.Wrapping = fyne.TextWrapWord

	v.plot = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	v.plot.FillMode = canvas.ImageFillContain
	v.plot.SetMinSize(fyne.NewSize(float32(v.opts.Width), float32(v.opts.Height)))

	form := container.NewVBox(widget.NewLabelWithStyle(d.Summary(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, p := range d.Params() {
		c := v.newControl(p)
		v.controls = append(v.controls, c)
		form.Add(container.NewBorder(nil, nil, widget.NewLabel(paramLabel(p)), c.value, c.slider))
	}

	buttons := container.NewHBox(
		widget.NewButton("Reset", v.Reset),
		widget.NewButton("Save PNG", func() { v.Snapshot() }),
	)
	if _, ok := d.(demo.Animated); ok {
		v.play = widget.NewButton("Play", v.TogglePlay)
		buttons.Add(v.play)
	}
	form.Add(buttons)
	form.Add(v.status)

	v.Content = container.NewBorder(nil, v.notes, nil, container.NewVScroll(form), v.plot)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.recompute(); err != nil {
		return nil, err
	}
	return v, nil
}

func paramLabel(p demo.Param) string {
	label := p.Label
	if label == "" {
		label = p.Name
	}
	if p.Unit != "" {
		label += " (" + p.Unit + ")"
	}
	return label
}

// Log sliders move in decades.
func toSlider(p demo.Param, x float64) float64 {
	if p.Log && x > 0 {
		return math.Log10(x)
	}
	return x
}

func fromSlider(p demo.Param, s float64) float64 {
	if p.Log {
		return p.Clamp(math.Pow(10, s))
	}
	return p.Clamp(s)
}

func (v *View) newControl(p demo.Param) control {
	lo, hi := p.Min, p.Max
	if p.Log && lo > 0 {
		lo, hi = math.Log10(lo), math.Log10(hi)
	}
	s := widget.NewSlider(lo, hi)
	s.Step = p.Step
	s.Value = toSlider(p, v.values[p.Name])
	c := control{param: p, slider: s, value: widget.NewLabel(p.Format(v.values[p.Name]))}
	s.OnChanged = func(x float64) {
		v.mu.Lock()
		defer v.mu.Unlock()
		next := fromSlider(p, x)
		if next == v.values[p.Name] {
			return
		}
		v.values[p.Name] = next
		c.value.SetText(p.Format(next))
		v.show(v.recompute())
	}
	return c
}

// Values returns a copy of the slider positions.
func (v *View) Values() demo.Values {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values.Clone()
}

// Figure is the last successfully computed figure.
func (v *View) Figure() *figure.Figure {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fig
}

func (v *View) Status() string { return v.status.Text }

// Set moves one slider and redraws.
func (v *View) Set(name string, x float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.controls {
		if c.param.Name == name {
			v.values[name] = c.param.Clamp(x)
			v.syncControls()
			return v.show(v.recompute())
		}
	}
	return fmt.Errorf("unknown param: %s (available: %v)", name, demo.ParamNames(v.demo.Params()))
}

// Reset restores every default.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values = demo.Defaults(v.demo.Params())
	v.syncControls()
	v.show(v.recompute())
}

// Frame advances an animated demo by one frame.
func (v *View) Frame() {
	a, ok := v.demo.(demo.Animated)
	if !ok {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values = a.Frame(v.values)
	v.syncControls()
	v.show(v.recompute())
}

// TogglePlay starts or stops the animation ticker.
func (v *View) TogglePlay() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stop != nil {
		close(v.stop)
		v.stop = nil
		if v.play != nil {
			v.play.SetText("Play")
		}
		return
	}
	stop := make(chan struct{})
	v.stop = stop
	if v.play != nil {
		v.play.SetText("Pause")
	}
	go v.animate(stop)
}

func (v *View) Playing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stop != nil
}

func (v *View) animate(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(v.opts.FPS))
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-v.ctx.Done():
			return
		case <-ticker.C:
			v.Frame()
		}
	}
}

// Snapshot writes the current figure as a PNG and returns its path.
func (v *View) Snapshot() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	path := filepath.Join(v.opts.SnapshotDir, fmt.Sprintf("%s_%d.png", v.demo.Name(), time.Now().Unix()))
	if err := export.SavePlot(v.fig, path, 0, 0); err != nil {
		v.status.SetText("snapshot failed: " + err.Error())
		return "", err
	}
	v.status.SetText("saved " + path)
	v.opts.Logger.Printf("snapshot %s", path)
	return path, nil
}

// syncControls moves the sliders to the current values. Setting Value
// directly does not call OnChanged. Callers hold mu.
func (v *View) syncControls() {
	for _, c := range v.controls {
		x := v.values[c.param.Name]
		c.slider.Value = toSlider(c.param, x)
		c.slider.Refresh()
		c.value.SetText(c.param.Format(x))
	}
}

// recompute evaluates the demo and redraws the plot. Callers hold mu.
func (v *View) recompute() error {
	fig, err := demo.Evaluate(v.ctx, v.demo, v.values)
	if err != nil {
		return err
	}
	img, err := v.opts.Render(fig, v.opts.Width, v.opts.Height)
	if err != nil {
		return fmt.Errorf("render %s: %w", v.demo.Name(), err)
	}
	v.fig = fig
	v.plot.Image = img
	v.plot.Refresh()
	v.notes.SetText(strings.Join(fig.Notes, "\n"))
	return nil
}

// show reports err in the status line and keeps the previous figure.
func (v *View) show(err error) error {
	if err != nil {
		v.status.SetText(err.Error())
		v.opts.Logger.Printf("%s: %v", v.demo.Name(), err)
		return err
	}
	v.status.SetText("")
	return nil
}
