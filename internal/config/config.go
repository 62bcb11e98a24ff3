package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// Window chrome around the effect surface
	SurfaceMargin = 40
	TopBarHeight  = 110

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50

	// Hover hum parameters
	HumFrequency  = 110.0
	HumVolume     = 0.25
	HumSampleRate = 44100
)

// Color is an RGB triple. Particles hold it by value; duplicates across
// particles are expected and harmless.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Effect is the full tuning for one effect instance. It is consumed once at
// construction; the surface dimensions are derived from it, never supplied.
type Effect struct {
	CellSize   float64 `yaml:"cell_size"`
	GapSize    float64 `yaml:"gap_size"`
	GridCells  int     `yaml:"grid_cells"`
	SquareSize float64 `yaml:"square_size"`

	MinPointFadeSpeed    float64 `yaml:"min_point_fade_speed"`
	MaxPointFadeSpeed    float64 `yaml:"max_point_fade_speed"`
	PointFadeSpeedFactor float64 `yaml:"point_fade_speed_factor"`
	CardSpeedFactor      float64 `yaml:"card_speed_factor"`
	FadeSpeedFactor      float64 `yaml:"fade_speed_factor"`

	Colors []Color `yaml:"colors"`
}

// Side returns the pixel side length of the (square) effect surface.
func (e Effect) Side() float64 {
	return float64(e.GridCells)*(e.CellSize+e.GapSize) - e.GapSize
}

// Validate reports the first configuration error, if any. A config that
// passes Validate can always be turned into a running effect.
func (e Effect) Validate() error {
	if e.GridCells < 1 {
		return fmt.Errorf("grid_cells must be at least 1, got %d", e.GridCells)
	}
	if e.MaxPointFadeSpeed < e.MinPointFadeSpeed {
		return fmt.Errorf("max_point_fade_speed (%v) is below min_point_fade_speed (%v)",
			e.MaxPointFadeSpeed, e.MinPointFadeSpeed)
	}
	if e.PointFadeSpeedFactor <= 0 {
		return fmt.Errorf("point_fade_speed_factor must be positive, got %v", e.PointFadeSpeedFactor)
	}
	if len(e.Colors) == 0 {
		return fmt.Errorf("colors must list at least one color")
	}
	return nil
}

// Default returns the built-in tuning: a 16x16 grid of 6px squares with a
// palette of three cyan hues.
func Default() Effect {
	return Effect{
		CellSize:   14,
		GapSize:    2,
		GridCells:  16,
		SquareSize: 6,

		MinPointFadeSpeed:    1,
		MaxPointFadeSpeed:    2.5,
		PointFadeSpeedFactor: 0.008,
		CardSpeedFactor:      0.05,
		FadeSpeedFactor:      0.02,

		Colors: []Color{
			paletteColor(187),
			paletteColor(199),
			paletteColor(212),
		},
	}
}

// Load reads and validates an effect config from a YAML file.
func Load(path string) (Effect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Effect{}, err
	}
	var e Effect
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Effect{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := e.Validate(); err != nil {
		return Effect{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return e, nil
}

func paletteColor(hue float64) Color {
	r, g, b := hsvToRgb(hue, 0.82, 0.95)
	return Color{R: r, G: g, B: b}
}

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
