// Package config loads godim.toml: the dimension style, the snapping options
// and the log level.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/internal/snap"
)

// FileName is the default config file name
const FileName = "godim.toml"

// Config is the parsed configuration
type Config struct {
	LogLevel string       `toml:"log_level"`
	Style    StyleSection `toml:"style"`
	Snap     SnapSection  `toml:"snap"`
}

// StyleSection mirrors dimension.Style with text colors and units
type StyleSection struct {
	LineColor       string  `toml:"line_color"`
	LabelColor      string  `toml:"label_color"`
	LabelBackground string  `toml:"label_background"`
	Scale           float64 `toml:"scale"`
	Units           string  `toml:"units"`
	DepthTest       bool    `toml:"depth_test"`
}

// SnapSection holds the snapping toggles
type SnapSection struct {
	Enabled bool `toml:"enabled"`
	snap.Options
}

// Default returns the built-in configuration
func Default() Config {
	style := dimension.DefaultStyle()
	return Config{
		LogLevel: "info",
		Style: StyleSection{
			LineColor:       dimension.FormatColor(style.LineColor),
			LabelColor:      dimension.FormatColor(style.LabelColor),
			LabelBackground: dimension.FormatColor(style.LabelBackground),
			Scale:           style.Scale,
			Units:           style.Units.String(),
			DepthTest:       style.DepthTest,
		},
		Snap: SnapSection{Enabled: true, Options: snap.DefaultOptions()},
	}
}

// Load reads path over the defaults. An empty path looks for FileName in the
// working directory and then in the user config directory; a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = find()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func find() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "godim", FileName))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Validate checks every value
func (c Config) Validate() error {
	if _, err := c.DimensionStyle(); err != nil {
		return err
	}
	if !(c.Snap.Threshold > 0) {
		return fmt.Errorf("snap threshold must be positive, got %v", c.Snap.Threshold)
	}
	return nil
}

// DimensionStyle converts the style section
func (c Config) DimensionStyle() (dimension.Style, error) {
	var style dimension.Style
	var err error

	if style.LineColor, err = dimension.ParseColor(c.Style.LineColor); err != nil {
		return style, fmt.Errorf("style.line_color: %w", err)
	}
	if style.LabelColor, err = dimension.ParseColor(c.Style.LabelColor); err != nil {
		return style, fmt.Errorf("style.label_color: %w", err)
	}
	if style.LabelBackground, err = dimension.ParseColor(c.Style.LabelBackground); err != nil {
		return style, fmt.Errorf("style.label_background: %w", err)
	}
	if style.Units, err = dimension.ParseUnit(c.Style.Units); err != nil {
		return style, fmt.Errorf("style.units: %w", err)
	}
	style.Scale = c.Style.Scale
	style.DepthTest = c.Style.DepthTest

	if err := style.Validate(); err != nil {
		return style, fmt.Errorf("style: %w", err)
	}
	return style, nil
}

// SnapOptions returns the snap toggles and threshold
func (c Config) SnapOptions() snap.Options {
	return c.Snap.Options
}

// Write encodes the configuration as TOML
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
