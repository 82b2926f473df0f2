package dimension

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Unit is the display unit for lengths. Scene coordinates are meters.
type Unit int

const (
	Meter Unit = iota
	Millimeter
	Foot
)

const metersToFeet = 3.28084

func (u Unit) String() string {
	switch u {
	case Meter:
		return "meter"
	case Millimeter:
		return "millimeter"
	case Foot:
		return "foot"
	default:
		return "unknown"
	}
}

// ParseUnit accepts the unit names and their usual abbreviations
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "m", "meter", "meters", "metre":
		return Meter, nil
	case "mm", "millimeter", "millimeters", "millimetre":
		return Millimeter, nil
	case "ft", "foot", "feet":
		return Foot, nil
	}
	return Meter, fmt.Errorf("unknown unit %q", name)
}

// FormatLength renders a length given in meters in the unit
func (u Unit) FormatLength(meters float64) string {
	switch u {
	case Millimeter:
		return fmt.Sprintf("%dmm", int64(math.Round(meters*1000)))
	case Foot:
		return fmt.Sprintf("%.2f'", meters*metersToFeet)
	default:
		return fmt.Sprintf("%.2fm", meters)
	}
}

// FormatAngle renders an angle given in radians as degrees
func FormatAngle(radians float64) string {
	return fmt.Sprintf("%.1f°", radians*180/math.Pi)
}

// Style controls how every dimension is drawn
type Style struct {
	LineColor       color.RGBA
	LabelColor      color.RGBA
	LabelBackground color.RGBA
	Scale           float64
	Units           Unit
	DepthTest       bool
}

// DefaultStyle returns the built-in style
func DefaultStyle() Style {
	return Style{
		LineColor:       color.RGBA{R: 255, G: 200, B: 0, A: 255},
		LabelColor:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		LabelBackground: color.RGBA{R: 0, G: 0, B: 0, A: 180},
		Scale:           1,
		Units:           Meter,
		DepthTest:       false,
	}
}

// Validate checks that the style can be drawn
func (s Style) Validate() error {
	if !(s.Scale > 0) || math.IsInf(s.Scale, 0) {
		return fmt.Errorf("style scale must be positive, got %v", s.Scale)
	}
	if s.Units < Meter || s.Units > Foot {
		return fmt.Errorf("unknown unit %d", s.Units)
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"
func ParseColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #rrggbb or #rrggbbaa", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor renders c as "#rrggbbaa"
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// desaturate blends c halfway toward its own grey
func desaturate(c color.RGBA) color.RGBA {
	grey := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	blend := func(v uint8) uint8 {
		return uint8(math.Round((float64(v) + grey) / 2))
	}
	return color.RGBA{R: blend(c.R), G: blend(c.G), B: blend(c.B), A: c.A}
}
