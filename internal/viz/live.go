package viz

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physdemo/internal/demo"
	"github.com/san-kum/physdemo/internal/export"
	"github.com/san-kum/physdemo/internal/figure"
)

// Options configures the slider TUI. Width and Height size each chart.
type Options struct {
	Width       int
	Height      int
	FPS         int
	SnapshotDir string
	// Snapshot writes the current figure; export.SavePlot when nil.
	Snapshot func(fig *figure.Figure, path string) error
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 12
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.SnapshotDir == "" {
		o.SnapshotDir = "."
	}
	if o.Snapshot == nil {
		o.Snapshot = func(fig *figure.Figure, path string) error {
			return export.SavePlot(fig, path, 0, 0)
		}
	}
	return o
}

type tickMsg time.Time

// backMsg asks an enclosing picker to return to its menu.
type backMsg struct{}

// Model is the slider view of one demonstration. Every slider change
// recomputes the figure synchronously; a failed recompute keeps the
// previous figure and shows the error.
type Model struct {
	ctx      context.Context
	demo     demo.Demo
	params   []demo.Param
	values   demo.Values
	fig      *figure.Figure
	err      error
	selected int
	toggled  map[string]bool
	paused   bool
	camera   *Camera
	opts     Options
	status   string
	showHelp bool
	embedded bool
}

// NewModel resolves initial over the demo defaults and computes the first
// figure.
func NewModel(ctx context.Context, d demo.Demo, initial demo.Values, opts Options) (Model, error) {
	values, err := demo.Resolve(d.Params(), initial)
	if err != nil {
		return Model{}, fmt.Errorf("%s: %w", d.Name(), err)
	}
	m := Model{
		ctx:     ctx,
		demo:    d,
		params:  d.Params(),
		values:  values,
		toggled: make(map[string]bool),
		camera:  NewCamera(),
		opts:    opts.withDefaults(),
	}
	m.recompute()
	if m.fig == nil {
		return Model{}, m.err
	}
	return m, nil
}

// Values returns a copy of the current slider positions.
func (m Model) Values() demo.Values { return m.values.Clone() }

// Figure is the last successfully computed figure.
func (m Model) Figure() *figure.Figure { return m.fig }

func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	if _, ok := m.demo.(demo.Animated); ok {
		return m.tick()
	}
	return nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) recompute() {
	fig, err := demo.Evaluate(m.ctx, m.demo, m.values)
	if err != nil {
		m.err = err
		return
	}
	fig.Toggle(m.toggled)
	m.fig, m.err = fig, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		a, ok := m.demo.(demo.Animated)
		if !ok {
			return m, nil
		}
		if !m.paused {
			m.values = a.Frame(m.values)
			m.recompute()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.embedded {
			return m, func() tea.Msg { return backMsg{} }
		}
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "right", "l":
		m.step(1)
	case "left", "h":
		m.step(-1)
	case "up", "k":
		m.step(10)
	case "down", "j":
		m.step(-10)
	case "r":
		m.values = demo.Defaults(m.params)
		m.camera.Reset()
		m.status = "reset"
		m.recompute()
	case " ":
		if _, ok := m.demo.(demo.Animated); ok {
			m.paused = !m.paused
		}
	case "s":
		m.snapshot()
	case "t":
		m.status = "theme " + NextTheme().Name
	case "?":
		m.showHelp = !m.showHelp
	case "y":
		m.camera.RotateYaw(0.1)
	case "Y":
		m.camera.RotateYaw(-0.1)
	case "p":
		m.camera.RotatePitch(0.1)
	case "P":
		m.camera.RotatePitch(-0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.toggle(int(key[0] - '1'))
		}
	}
	return m, nil
}

func (m *Model) cycle(dir int) {
	if len(m.params) == 0 {
		return
	}
	m.selected = (m.selected + dir + len(m.params)) % len(m.params)
}

func (m *Model) step(n int) {
	if len(m.params) == 0 {
		return
	}
	p := m.params[m.selected]
	next := p.Stepped(m.values[p.Name], n)
	if next == m.values[p.Name] {
		return
	}
	m.values[p.Name] = next
	m.status = ""
	m.recompute()
}

func (m *Model) toggle(i int) {
	if m.fig == nil {
		return
	}
	names := m.fig.SeriesNames()
	if i >= len(names) {
		return
	}
	name := names[i]
	m.toggled[name] = !m.toggled[name]
	m.fig.Toggle(map[string]bool{name: true})
}

func (m *Model) snapshot() {
	if m.fig == nil {
		return
	}
	path := filepath.Join(m.opts.SnapshotDir, fmt.Sprintf("%s_%d.png", m.demo.Name(), time.Now().Unix()))
	if err := m.opts.Snapshot(m.fig, path); err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(GradientText(strings.ToUpper(m.demo.Name()), CurrentTheme.Primary, CurrentTheme.Secondary))
	b.WriteString("  " + Subtle.Render(m.demo.Summary()) + "\n")

	if _, ok := m.demo.(demo.Animated); ok {
		if m.paused {
			b.WriteString(StatusPaused.Render("PAUSED"))
		} else {
			b.WriteString(StatusRunning.Render("RUNNING"))
		}
		b.WriteString("  ")
	}
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
	} else if m.status != "" {
		b.WriteString(Subtle.Render(m.status))
	}
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(PanelStyle.Render(helpText) + "\n")
	}

	chart := ""
	if m.fig != nil {
		chart = RenderFigure(m.fig, RenderOptions{Width: m.opts.Width, Height: m.opts.Height, Camera: m.camera})
	}
	side := m.sliderView() + "\n" + m.seriesView()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chart, "  ", PanelStyle.Render(side)))
	b.WriteString("\n" + KeyHint.Render("tab select  h/l step  j/k x10  1-9 series  r reset  s save  ? help  q quit"))
	return b.String()
}

func (m Model) sliderView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("PARAMETERS") + "\n")
	if len(m.params) == 0 {
		b.WriteString(Subtle.Render("  (none)") + "\n")
	}
	for i, p := range m.params {
		v := m.values[p.Name]
		lo, hi, pos := p.Min, p.Max, v
		if p.Log && lo > 0 && v > 0 {
			lo, hi, pos = math.Log10(lo), math.Log10(hi), math.Log10(v)
		}
		unit := ""
		if p.Unit != "" {
			unit = " " + p.Unit
		}
		line := fmt.Sprintf("%-10s %s %s%s", p.Name, SliderBar(pos, lo, hi, 10), p.Format(v), unit)
		if i == m.selected {
			b.WriteString(ActiveStyle.Render("> "+line) + "\n")
			b.WriteString(Subtle.Render("  "+p.Label) + "\n")
		} else {
			b.WriteString("  " + ValueStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m Model) seriesView() string {
	if m.fig == nil {
		return ""
	}
	names := m.fig.SeriesNames()
	if len(names) == 0 {
		return ""
	}
	hidden := make(map[string]bool)
	for _, p := range m.fig.Panels {
		for _, s := range p.Series {
			if s.Hidden {
				hidden[s.Name] = true
			}
		}
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render("SERIES") + "\n")
	for i, name := range names {
		if i >= 9 {
			break
		}
		mark := "[x]"
		if hidden[name] {
			mark = "[ ]"
		}
		b.WriteString(fmt.Sprintf("  %d %s %s\n", i+1, mark, name))
	}
	return b.String()
}

const helpText = `tab / shift+tab  select slider
h l / left right  step slider
j k / down up     step x10
1-9               show or hide a series
r                 reset sliders
space             pause animation
s                 save a PNG snapshot
y Y p P + -       rotate and zoom 3D panels
t                 cycle theme
esc               back to the demo list
q                 quit`

// RunLive opens the slider TUI for one demonstration.
func RunLive(ctx context.Context, d demo.Demo, initial demo.Values, opts Options) error {
	m, err := NewModel(ctx, d, initial, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
