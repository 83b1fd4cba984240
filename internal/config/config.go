// Package config loads parameter files, presets and environment settings
// and layers them onto a demo's defaults.
//
// Precedence, lowest first: slider defaults, preset, parameter file,
// --set assignments.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/san-kum/physdemo/internal/demo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir = ".physdemo"
	DefaultTheme   = "cyberpunk"
	DefaultWidth   = 80
	DefaultHeight  = 12
	DefaultFPS     = 30
)

// File is a YAML parameter file:
//
//	demo: blackbody
//	preset: sun
//	params:
//	  T: 6000
//	output:
//	  file: sun.png
type File struct {
	Demo   string      `yaml:"demo"`
	Preset string      `yaml:"preset,omitempty"`
	Params demo.Values `yaml:"params,omitempty"`
	Output Output      `yaml:"output,omitempty"`
}

// Output sizes are in points for file rendering; zero means the default.
type Output struct {
	File   string  `yaml:"file,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Env holds the settings read from PHYSDEMO_* variables.
type Env struct {
	DataDir string `env:"PHYSDEMO_DATA_DIR" envDefault:".physdemo"`
	Theme   string `env:"PHYSDEMO_THEME" envDefault:"cyberpunk"`
	Width   int    `env:"PHYSDEMO_WIDTH" envDefault:"80"`
	Height  int    `env:"PHYSDEMO_HEIGHT" envDefault:"12"`
	FPS     int    `env:"PHYSDEMO_FPS" envDefault:"30"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if e.Width <= 0 || e.Height <= 0 || e.FPS <= 0 {
		return Env{}, fmt.Errorf("parse env: width, height and fps must be positive (got %d, %d, %d)", e.Width, e.Height, e.FPS)
	}
	return e, nil
}

// Resolve computes the slider values for d. A preset given here wins over
// the file's preset; file may be nil.
func Resolve(d demo.Demo, preset string, file *File, set demo.Values) (demo.Values, error) {
	var layers []demo.Values
	if file != nil {
		if file.Demo != "" && file.Demo != d.Name() {
			return nil, fmt.Errorf("parameter file is for %s, not %s", file.Demo, d.Name())
		}
		if preset == "" {
			preset = file.Preset
		}
	}
	if preset != "" {
		p, err := GetPreset(d.Name(), preset)
		if err != nil {
			return nil, err
		}
		layers = append(layers, p)
	}
	if file != nil {
		layers = append(layers, file.Params)
	}
	layers = append(layers, set)

	v, err := demo.Resolve(d.Params(), layers...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	return v, nil
}
