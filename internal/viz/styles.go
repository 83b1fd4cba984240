package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physdemo/internal/figure"
)

// Styles of the TUI chrome, rebuilt by applyTheme.
var (
	TitleStyle    lipgloss.Style
	Subtle        lipgloss.Style
	ActiveStyle   lipgloss.Style
	LabelStyle    lipgloss.Style
	ValueStyle    lipgloss.Style
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	ErrorStyle    lipgloss.Style
	KeyHint       lipgloss.Style
	PanelStyle    lipgloss.Style

	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
)

func init() { applyTheme(CurrentTheme) }

func applyTheme(t Theme) {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lc(t.Secondary))
	Subtle = lipgloss.NewStyle().Foreground(lc(t.Muted))
	ActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lc(t.Primary))
	LabelStyle = lipgloss.NewStyle().Foreground(lc(t.Muted)).Width(12)
	ValueStyle = lipgloss.NewStyle().Foreground(lc(t.Text))
	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lc(t.Success))
	StatusPaused = lipgloss.NewStyle().Bold(true).Foreground(lc(t.Warning))
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lc(t.Error))
	KeyHint = lipgloss.NewStyle().Foreground(lc(t.Muted)).Italic(true)
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lc(t.Muted)).
		Padding(0, 1)

	SparkHigh = lipgloss.NewStyle().Foreground(lc(t.Success))
	SparkMid = lipgloss.NewStyle().Foreground(lc(t.Warning))
	SparkLow = lipgloss.NewStyle().Foreground(lc(t.Error))
}

// GradientText colors each rune of text on the line from start to end.
func GradientText(text string, start, end figure.RGB) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Foreground(lc(figure.Lerp(start, end, t)))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// SliderBar draws the position of v in [lo, hi] as a filled bar.
func SliderBar(v, lo, hi float64, width int) string {
	frac := 0.0
	if hi > lo {
		frac = (v - lo) / (hi - lo)
	}
	filled := int(frac*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineChart renders values as one row of block heights, sampling to
// width columns.
func SparklineChart(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	step := max(1, len(values)/width)

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := max(0, min(len(sparkChars)-1, int(norm*float64(len(sparkChars)-1))))
		c := string(sparkChars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(SparkMid.Render(c))
		default:
			b.WriteString(SparkLow.Render(c))
		}
	}
	return b.String()
}

// Separator is a muted rule with a centered diamond.
func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return Subtle.Render(left + " ◆ " + right)
}
