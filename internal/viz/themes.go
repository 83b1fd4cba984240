package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physdemo/internal/figure"
)

// Theme is the color scheme of the TUI chrome. Plot series keep their own
// colors.
type Theme struct {
	Name      string
	Primary   figure.RGB
	Secondary figure.RGB
	Accent    figure.RGB
	Text      figure.RGB
	Muted     figure.RGB
	Success   figure.RGB
	Warning   figure.RGB
	Error     figure.RGB
}

func lc(c figure.RGB) lipgloss.Color { return lipgloss.Color(c.Hex()) }

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   figure.RGB{R: 0xff, G: 0x00, B: 0xff},
		Secondary: figure.RGB{R: 0x00, G: 0xff, B: 0xff},
		Accent:    figure.RGB{R: 0xff, G: 0xff, B: 0x00},
		Text:      figure.RGB{R: 0xff, G: 0xff, B: 0xff},
		Muted:     figure.RGB{R: 0x66, G: 0x66, B: 0x88},
		Success:   figure.RGB{R: 0x00, G: 0xff, B: 0x88},
		Warning:   figure.RGB{R: 0xff, G: 0xaa, B: 0x00},
		Error:     figure.RGB{R: 0xff, G: 0x44, B: 0x44},
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   figure.RGB{R: 0x00, G: 0xff, B: 0x00},
		Secondary: figure.RGB{R: 0x00, G: 0xcc, B: 0x00},
		Accent:    figure.RGB{R: 0x88, G: 0xff, B: 0x88},
		Text:      figure.RGB{R: 0x00, G: 0xff, B: 0x00},
		Muted:     figure.RGB{R: 0x00, G: 0x55, B: 0x00},
		Success:   figure.RGB{R: 0x88, G: 0xff, B: 0x88},
		Warning:   figure.RGB{R: 0xff, G: 0xff, B: 0x00},
		Error:     figure.RGB{R: 0xff, G: 0x00, B: 0x00},
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   figure.RGB{R: 0xff, G: 0xff, B: 0xff},
		Secondary: figure.RGB{R: 0xcc, G: 0xcc, B: 0xcc},
		Accent:    figure.RGB{R: 0x00, G: 0x88, B: 0xff},
		Text:      figure.RGB{R: 0xff, G: 0xff, B: 0xff},
		Muted:     figure.RGB{R: 0x88, G: 0x88, B: 0x88},
		Success:   figure.RGB{R: 0x00, G: 0xff, B: 0x00},
		Warning:   figure.RGB{R: 0xff, G: 0xaa, B: 0x00},
		Error:     figure.RGB{R: 0xff, G: 0x00, B: 0x00},
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   figure.RGB{R: 0x00, G: 0x77, B: 0xbe},
		Secondary: figure.RGB{R: 0x00, G: 0xa8, B: 0xcc},
		Accent:    figure.RGB{R: 0xff, G: 0xd7, B: 0x00},
		Text:      figure.RGB{R: 0xe0, G: 0xf0, B: 0xff},
		Muted:     figure.RGB{R: 0x44, G: 0x88, B: 0xaa},
		Success:   figure.RGB{R: 0x00, G: 0xff, B: 0x88},
		Warning:   figure.RGB{R: 0xff, G: 0xcc, B: 0x00},
		Error:     figure.RGB{R: 0xff, G: 0x44, B: 0x44},
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   figure.RGB{R: 0xff, G: 0x6b, B: 0x6b},
		Secondary: figure.RGB{R: 0xfe, G: 0xca, B: 0x57},
		Accent:    figure.RGB{R: 0xff, G: 0x9f, B: 0xf3},
		Text:      figure.RGB{R: 0xff, G: 0xf5, B: 0xf5},
		Muted:     figure.RGB{R: 0x8b, G: 0x6b, B: 0x8c},
		Success:   figure.RGB{R: 0x5f, G: 0xd0, B: 0x68},
		Warning:   figure.RGB{R: 0xff, G: 0xc0, B: 0x48},
		Error:     figure.RGB{R: 0xff, G: 0x47, B: 0x57},
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{ThemeCyberpunk, ThemeRetro, ThemeMinimal, ThemeOcean, ThemeSunset}
)

// GetTheme looks a theme up by name.
func GetTheme(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("unknown theme: %s (available: %v)", name, ThemeNames())
}

// SetTheme makes the named theme current and restyles the TUI.
func SetTheme(name string) error {
	t, err := GetTheme(name)
	if err != nil {
		return err
	}
	CurrentTheme = t
	applyTheme(t)
	return nil
}

// NextTheme cycles to the theme after the current one.
func NextTheme() Theme {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			next := Themes[(i+1)%len(Themes)]
			_ = SetTheme(next.Name)
			return next
		}
	}
	_ = SetTheme(Themes[0].Name)
	return CurrentTheme
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
