package viz

import (
	"strings"
	"testing"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	c.Set(7, 7)
	if !c.IsSet(0, 0) || !c.IsSet(7, 7) {
		t.Fatal("expected dots to be set")
	}
	if c.IsSet(1, 0) {
		t.Error("neighbouring dot should be clear")
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)

	c.Clear()
	if c.IsSet(0, 0) || c.IsSet(7, 7) {
		t.Error("clear should reset every dot")
	}
	if got := strings.Count(c.String(), "\n"); got != 2 {
		t.Errorf("expected 2 rows, got %d", got)
	}
}

func TestCanvas_BrailleEncoding(t *testing.T) {
	c := NewCanvas(1, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			c.Set(x, y)
		}
	}
	if got := c.String(); got != "⣿\n" {
		t.Errorf("expected full braille cell, got %q", got)
	}
}

func TestCanvas_DrawLineEndpoints(t *testing.T) {
	tests := []struct{ x0, y0, x1, y1 int }{
		{0, 0, 19, 0},
		{0, 0, 0, 15},
		{0, 0, 19, 15},
		{19, 15, 0, 0},
		{3, 12, 17, 2},
	}

	for _, tt := range tests {
		c := NewCanvas(10, 4)
		c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1)
		if !c.IsSet(tt.x0, tt.y0) || !c.IsSet(tt.x1, tt.y1) {
			t.Errorf("line %v should include both endpoints", tt)
		}
	}
}

func TestCanvas_Project(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetViewport(Viewport{XMin: -1, XMax: 1, YMin: 0, YMax: 2})

	tests := []struct {
		x, y   float64
		px, py int
	}{
		{-1, 2, 0, 0},
		{1, 0, 19, 19},
		{-1, 0, 0, 19},
	}
	for _, tt := range tests {
		px, py := c.Project(tt.x, tt.y)
		if px != tt.px || py != tt.py {
			t.Errorf("Project(%g, %g) = (%d, %d), want (%d, %d)", tt.x, tt.y, px, py, tt.px, tt.py)
		}
	}
}

func TestCanvas_Circle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.SetViewport(Viewport{XMin: 0, XMax: 40, YMin: 0, YMax: 40})

	c.Circle(20, 20, 10)
	px, py := c.Project(20, 20)
	_, top := c.Project(20, 30)
	if !c.IsSet(px, top) {
		t.Error("expected the top of the circle to be drawn")
	}
	if c.IsSet(px, py) {
		t.Error("circle outline should leave the centre empty")
	}
}
