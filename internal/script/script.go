// Package script replays recorded annotation sessions written in YAML.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a camera setup followed by a list of input steps
type Script struct {
	Model    string     `yaml:"model,omitempty"`
	Camera   CameraSpec `yaml:"camera"`
	Viewport Viewport   `yaml:"viewport"`
	Labels   []string   `yaml:"labels,omitempty"`
	Steps    []Step     `yaml:"steps"`
}

// CameraSpec places the camera. FOV is in degrees.
type CameraSpec struct {
	Position []float64 `yaml:"position,omitempty"`
	Target   []float64 `yaml:"target,omitempty"`
	FOV      float64   `yaml:"fov,omitempty"`
}

// Viewport is the pixel size clicks are given in
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Step is a single action. Exactly one field is set.
type Step struct {
	Mode    string    `yaml:"mode,omitempty"`
	Click   []float64 `yaml:"click,omitempty"`
	Move    []float64 `yaml:"move,omitempty"`
	ClickAt []float64 `yaml:"click_at,omitempty"`
	MoveAt  []float64 `yaml:"move_at,omitempty"`
	Plane   string    `yaml:"plane,omitempty"`
	Cancel  bool      `yaml:"cancel,omitempty"`
	Undo    bool      `yaml:"undo,omitempty"`
	Clear   bool      `yaml:"clear,omitempty"`
	Units   string    `yaml:"units,omitempty"`
	Scale   float64   `yaml:"scale,omitempty"`
	Snap    *bool     `yaml:"snap,omitempty"`
}

// Load reads a script file
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("script is empty")
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes the script as YAML
func (s *Script) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode script: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (s *Script) applyDefaults() {
	if s.Viewport.Width == 0 {
		s.Viewport.Width = 800
	}
	if s.Viewport.Height == 0 {
		s.Viewport.Height = 600
	}
	if s.Camera.FOV == 0 {
		s.Camera.FOV = 45
	}
}

// Validate checks the camera, viewport and that every step has one action
func (s *Script) Validate() error {
	if s.Camera.Position != nil && len(s.Camera.Position) != 3 {
		return errors.New("camera.position needs 3 coordinates")
	}
	if s.Camera.Target != nil && len(s.Camera.Target) != 3 {
		return errors.New("camera.target needs 3 coordinates")
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be between 0 and 180 degrees, got %v", s.Camera.FOV)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", s.Viewport.Width, s.Viewport.Height)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{
		st.Mode != "",
		st.Click != nil,
		st.Move != nil,
		st.ClickAt != nil,
		st.MoveAt != nil,
		st.Plane != "",
		st.Cancel,
		st.Undo,
		st.Clear,
		st.Units != "",
		st.Scale != 0,
		st.Snap != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (st Step) validate() error {
	switch n := st.actions(); {
	case n == 0:
		return errors.New("no action")
	case n > 1:
		return fmt.Errorf("%d actions, expected one", n)
	}
	switch {
	case st.Click != nil && len(st.Click) != 2:
		return errors.New("click needs x and y")
	case st.Move != nil && len(st.Move) != 2:
		return errors.New("move needs x and y")
	case st.ClickAt != nil && len(st.ClickAt) != 3:
		return errors.New("click_at needs 3 coordinates")
	case st.MoveAt != nil && len(st.MoveAt) != 3:
		return errors.New("move_at needs 3 coordinates")
	case st.Scale < 0:
		return errors.New("scale must be positive")
	}
	return nil
}
