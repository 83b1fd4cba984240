package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physdemo/internal/demo"
)

const (
	stateMenu = iota
	stateLive
)

// picker lists the registered demonstrations and opens the slider view of
// the chosen one.
type picker struct {
	ctx    context.Context
	demos  []demo.Demo
	cursor int
	state  int
	live   Model
	opts   Options
	err    error
}

func NewPicker(ctx context.Context, reg *demo.Registry, opts Options) *picker {
	return &picker{ctx: ctx, demos: reg.All(), opts: opts.withDefaults()}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		if _, ok := msg.(backMsg); ok {
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.demos)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.open()
	}
	return m, nil
}

func (m picker) open() (tea.Model, tea.Cmd) {
	if len(m.demos) == 0 {
		return m, nil
	}
	live, err := NewModel(m.ctx, m.demos[m.cursor], nil, m.opts)
	if err != nil {
		m.err = err
		return m, nil
	}
	live.embedded = true
	m.live, m.state, m.err = live, stateLive, nil
	return m, live.Init()
}

func (m picker) View() string {
	if m.state == stateLive {
		return m.live.View()
	}
	var b strings.Builder
	b.WriteString("\n    " + GradientText("PHYSDEMO", CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	b.WriteString("    " + Subtle.Render("physics demonstrations") + "\n")
	b.WriteString("    " + Separator(40) + "\n\n")
	for i, d := range m.demos {
		summary := d.Summary()
		if len(summary) > 60 {
			summary = summary[:57] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", ActiveStyle.Render("▸"), ActiveStyle.Render(fmt.Sprintf("%-18s", d.Name())), ValueStyle.Render(summary)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", ValueStyle.Render(fmt.Sprintf("%-18s", d.Name())), Subtle.Render(summary)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + ErrorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  enter open  q quit") + "\n")
	return b.String()
}

// RunInteractive opens the demo picker.
func RunInteractive(ctx context.Context, reg *demo.Registry, opts Options) error {
	_, err := tea.NewProgram(NewPicker(ctx, reg, opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
