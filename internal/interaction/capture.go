package interaction

import (
	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/pkg/geometry"
)

// capture holds the points of the dimension or plane being defined.
// Each kind of capture has its own type so only valid combinations exist.
type capture interface {
	first() geometry.Vector3
	points() []geometry.Vector3
}

// linearCapture serves linear and aligned dimensions
type linearCapture struct {
	aligned bool
	a       geometry.Vector3
	b       *geometry.Vector3
}

func (c *linearCapture) first() geometry.Vector3 { return c.a }

func (c *linearCapture) points() []geometry.Vector3 {
	if c.b == nil {
		return []geometry.Vector3{c.a}
	}
	return []geometry.Vector3{c.a, *c.b}
}

func (c *linearCapture) record(b, offset geometry.Vector3) dimension.Record {
	if c.aligned {
		return dimension.NewAligned(c.a, b, offset)
	}
	return dimension.NewLinear(c.a, b, offset)
}

type angleCapture struct {
	center geometry.Vector3
	arm1   *geometry.Vector3
	arm2   *geometry.Vector3
}

func (c *angleCapture) first() geometry.Vector3 { return c.center }

func (c *angleCapture) points() []geometry.Vector3 {
	out := []geometry.Vector3{c.center}
	if c.arm1 != nil {
		out = append(out, *c.arm1)
	}
	if c.arm2 != nil {
		out = append(out, *c.arm2)
	}
	return out
}

type leaderCapture struct {
	tip   geometry.Vector3
	elbow *geometry.Vector3
}

func (c *leaderCapture) first() geometry.Vector3 { return c.tip }

func (c *leaderCapture) points() []geometry.Vector3 {
	if c.elbow == nil {
		return []geometry.Vector3{c.tip}
	}
	return []geometry.Vector3{c.tip, *c.elbow}
}

// planeCapture collects the origin and x-axis point of a 3-point plane definition
type planeCapture struct {
	origin *geometry.Vector3
	xAxis  *geometry.Vector3
}

func (c *planeCapture) first() geometry.Vector3 {
	if c.origin == nil {
		return geometry.Vector3{}
	}
	return *c.origin
}

func (c *planeCapture) points() []geometry.Vector3 {
	var out []geometry.Vector3
	if c.origin != nil {
		out = append(out, *c.origin)
	}
	if c.xAxis != nil {
		out = append(out, *c.xAxis)
	}
	return out
}

func ptr(v geometry.Vector3) *geometry.Vector3 {
	return &v
}
