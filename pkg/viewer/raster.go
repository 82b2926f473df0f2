package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas is an RGBA image with a depth buffer
type Canvas struct {
	Image  *image.RGBA
	zbuf   []float64
	width  int
	height int
}

// NewCanvas creates a canvas filled with background
func NewCanvas(width, height int, background color.RGBA) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	zbuf := make([]float64, width*height)
	for i := range zbuf {
		zbuf[i] = math.Inf(1)
	}
	return &Canvas{Image: img, zbuf: zbuf, width: width, height: height}
}

// point is a projected vertex: pixel position and camera depth
type point struct {
	x, y, z float64
}

// blend mixes col over the pixel with opacity alpha
func (c *Canvas) blend(x, y int, col color.RGBA, alpha float64) {
	if alpha >= 1 {
		c.Image.SetRGBA(x, y, col)
		return
	}
	dst := c.Image.RGBAAt(x, y)
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round(float64(s)*alpha + float64(d)*(1-alpha)))
	}
	c.Image.SetRGBA(x, y, color.RGBA{R: mix(col.R, dst.R), G: mix(col.G, dst.G), B: mix(col.B, dst.B), A: 255})
}

// plot draws one pixel, honoring the depth buffer when depthTest is set
func (c *Canvas) plot(x, y int, z float64, col color.RGBA, alpha float64, depthTest bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	idx := y*c.width + x
	if depthTest && z > c.zbuf[idx]+1e-3 {
		return
	}
	c.blend(x, y, col, alpha)
}

// FillTriangle fills a triangle with depth testing (scanline)
func (c *Canvas) FillTriangle(a, b, d point, col color.RGBA) {
	vertices := [3]point{a, b, d}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0].y > vertices[1].y {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1].y > vertices[2].y {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0].y > vertices[1].y {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	p1, p2, p3 := vertices[0], vertices[1], vertices[2]

	edges := [3][2]point{{p1, p2}, {p2, p3}, {p1, p3}}

	for y := int(math.Max(0, math.Ceil(p1.y))); y <= int(math.Min(float64(c.height-1), p3.y)); y++ {
		fy := float64(y)

		var xs, zs [2]float64
		found := 0
		for _, e := range edges {
			if found == 2 || e[0].y == e[1].y || fy < e[0].y || fy > e[1].y {
				continue
			}
			t := (fy - e[0].y) / (e[1].y - e[0].y)
			xs[found] = e[0].x + t*(e[1].x-e[0].x)
			zs[found] = e[0].z + t*(e[1].z-e[0].z)
			found++
		}
		if found < 2 {
			continue
		}

		if xs[0] > xs[1] {
			xs[0], xs[1] = xs[1], xs[0]
			zs[0], zs[1] = zs[1], zs[0]
		}

		xStart := int(math.Max(0, math.Ceil(xs[0])))
		xEnd := int(math.Min(float64(c.width-1), xs[1]))
		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if xs[1] != xs[0] {
				t = (float64(x) - xs[0]) / (xs[1] - xs[0])
			}
			z := zs[0] + t*(zs[1]-zs[0])

			idx := y*c.width + x
			if z < c.zbuf[idx] {
				c.zbuf[idx] = z
				c.Image.SetRGBA(x, y, col)
			}
		}
	}
}

// Line draws a line (Bresenham) with depth interpolated between the ends
func (c *Canvas) Line(a, b point, col color.RGBA, alpha float64, depthTest bool) {
	x1, y1 := int(math.Round(a.x)), int(math.Round(a.y))
	x2, y2 := int(math.Round(b.x)), int(math.Round(b.y))

	dx := absInt(x2 - x1)
	dy := absInt(y2 - y1)
	steps := math.Max(1, float64(max(dx, dy)))

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	step := 0
	for {
		z := a.z + (b.z-a.z)*float64(step)/steps
		c.plot(x1, y1, z, col, alpha, depthTest)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
		step++
	}
}

// Square outlines a square of half-size r centered at p
func (c *Canvas) Square(p point, r float64, col color.RGBA) {
	tl := point{p.x - r, p.y - r, p.z}
	tr := point{p.x + r, p.y - r, p.z}
	br := point{p.x + r, p.y + r, p.z}
	bl := point{p.x - r, p.y + r, p.z}
	c.Line(tl, tr, col, 1, false)
	c.Line(tr, br, col, 1, false)
	c.Line(br, bl, col, 1, false)
	c.Line(bl, tl, col, 1, false)
}

// Text draws text centered on (x, y) over a filled background box
func (c *Canvas) Text(x, y float64, text string, fg, bg color.RGBA, alpha float64) {
	face := basicfont.Face7x13
	drawer := font.Drawer{Face: face}
	width := drawer.MeasureString(text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	left := int(math.Round(x)) - width/2
	top := int(math.Round(y)) - height/2
	box := image.Rect(left-3, top-2, left+width+3, top+height+2)

	if bg.A > 0 {
		bgAlpha := alpha * float64(bg.A) / 255
		for py := box.Min.Y; py < box.Max.Y; py++ {
			for px := box.Min.X; px < box.Max.X; px++ {
				c.plot(px, py, 0, bg, bgAlpha, false)
			}
		}
	}

	fgCol := color.NRGBA{R: fg.R, G: fg.G, B: fg.B, A: uint8(math.Round(float64(fg.A) * alpha))}
	drawer.Dst = c.Image
	drawer.Src = image.NewUniform(fgCol)
	drawer.Dot = fixed.P(left, top+metrics.Ascent.Ceil())
	drawer.DrawString(text)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
