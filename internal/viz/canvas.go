package viz

import (
	"math"
	"strings"
)

// Each braille cell holds a 2x4 dot matrix; dot bits by (row, column):
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot canvas of Width x Height terminal cells, giving
// (2*Width) x (4*Height) addressable dots.
type Canvas struct {
	Width, Height int
	cells         [][]rune
	view          Viewport
}

// Viewport maps world coordinates onto the canvas; Y grows upward.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		cells:  make([][]rune, h),
		view:   Viewport{XMin: 0, XMax: float64(2 * w), YMin: 0, YMax: float64(4 * h)},
	}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) SetViewport(v Viewport) {
	c.view = v
}

// DotsW and DotsH are the canvas extent in dots.
func (c *Canvas) DotsW() int { return 2 * c.Width }
func (c *Canvas) DotsH() int { return 4 * c.Height }

// Set lights the dot at (x, y); dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.DotsW() || y >= c.DotsH() {
		return
	}
	c.cells[y/4][x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.DotsW() || y >= c.DotsH() {
		return false
	}
	return c.cells[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBlank
		}
	}
}

// DrawLine draws between two dots with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Project converts a world point to dot coordinates.
func (c *Canvas) Project(x, y float64) (int, int) {
	v := c.view
	w, h := float64(c.DotsW()-1), float64(c.DotsH()-1)
	px := (x - v.XMin) / (v.XMax - v.XMin) * w
	py := (v.YMax - y) / (v.YMax - v.YMin) * h
	return int(math.Round(px)), int(math.Round(py))
}

// Aspect is the world X distance covered by one world Y unit's worth of
// dots; multiply horizontal offsets by it to keep shapes proportional.
func (c *Canvas) Aspect() float64 {
	v := c.view
	xPerDot := (v.XMax - v.XMin) / float64(c.DotsW())
	yPerDot := (v.YMax - v.YMin) / float64(c.DotsH())
	return xPerDot / yPerDot
}

// Line draws a segment given in world coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	ax, ay := c.Project(x0, y0)
	bx, by := c.Project(x1, y1)
	c.DrawLine(ax, ay, bx, by)
}

// Polyline joins consecutive world points.
func (c *Canvas) Polyline(xs, ys []float64) {
	for i := 1; i < len(xs) && i < len(ys); i++ {
		c.Line(xs[i-1], ys[i-1], xs[i], ys[i])
	}
}

// Rect outlines the world-space rectangle with corner (x, y).
func (c *Canvas) Rect(x, y, w, h float64) {
	c.Line(x, y, x+w, y)
	c.Line(x+w, y, x+w, y+h)
	c.Line(x+w, y+h, x, y+h)
	c.Line(x, y+h, x, y)
}

// Circle outlines a world-space circle; the radius is measured along Y.
func (c *Canvas) Circle(cx, cy, r float64) {
	px, py := c.Project(cx, cy)
	_, ey := c.Project(cx, cy+r)
	rad := absInt(ey - py)
	if rad == 0 {
		c.Set(px, py)
		return
	}
	// midpoint circle
	x, y, d := rad, 0, 1-rad
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			c.Set(px+p[0], py+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
