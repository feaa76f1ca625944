package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Set(3, 7)
	if c.Grid[1][1] == 0x2800 {
		t.Error("cell not set")
	}

	c.Unset(3, 7)
	if c.Grid[1][1] != 0x2800 {
		t.Error("cell not cleared")
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(4, 4)

	// Out-of-range coordinates must be ignored, not panic.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 0)
	c.Set(0, 100)
	c.Unset(-5, -5)

	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) modified by out-of-range write", i, j)
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)

	set := 0
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				set++
			}
		}
	}
	if set == 0 {
		t.Error("line drew nothing")
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8)

	// Points on the four compass directions must be lit.
	for _, pt := range []struct{ x, y int }{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		col, row := pt.x/2, pt.y/4
		if c.Grid[row][col] == 0x2800 {
			t.Errorf("circle missing point (%d,%d)", pt.x, pt.y)
		}
	}
	// Center stays empty for an outline.
	if c.Grid[5][10] != 0x2800 {
		t.Error("outline circle filled its center")
	}
}

func TestCanvasClearAndString(t *testing.T) {
	c := NewCanvas(6, 3)
	c.Set(0, 0)
	c.Clear()

	out := c.String()
	if strings.Count(out, "\n") != 3 {
		t.Errorf("expected 3 rows, got %q", out)
	}
	for _, r := range out {
		if r != 0x2800 && r != '\n' {
			t.Errorf("clear left rune %U", r)
		}
	}
}
