package figure

import (
	"fmt"
	"image/color"

	"gopkg.in/go-playground/colors.v1"
)

type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	rgb, err := colors.RGB(c.R, c.G, c.B)
	if err != nil {
		return "#ffffff"
	}
	return rgb.ToHEX().String()
}

// ParseHex reads #rgb or #rrggbb.
func ParseHex(s string) (RGB, error) {
	hex, err := colors.ParseHEX(s)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	rgb := hex.ToRGB()
	return RGB{rgb.R, rgb.G, rgb.B}, nil
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// FromColor drops the alpha channel of c.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var (
	Black  = RGB{0x00, 0x00, 0x00}
	Gray   = RGB{0x88, 0x88, 0x88}
	Red    = RGB{0xd6, 0x27, 0x28}
	Blue   = RGB{0x1f, 0x77, 0xb4}
	Green  = RGB{0x2c, 0xa0, 0x2c}
	Orange = RGB{0xff, 0x7f, 0x0e}
	Purple = RGB{0x94, 0x67, 0xbd}
)

var palette = []RGB{
	Blue,
	Orange,
	Green,
	Red,
	Purple,
	{0x8c, 0x56, 0x4b},
	{0xe3, 0x77, 0xc2},
	{0x7f, 0x7f, 0x7f},
	{0xbc, 0xbd, 0x22},
	{0x17, 0xbe, 0xcf},
}

// Palette returns the i-th series color, cycling.
func Palette(i int) RGB {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// Lerp blends a toward b by t in [0, 1].
func Lerp(a, b RGB, t float64) RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + t*(float64(y)-float64(x)) + 0.5)
	}
	return RGB{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B)}
}
