package linuxinput

import "github.com/ice2642/hcorner/internal/core/hotcorner"

// cursor integrates relative motion into a position bounded by the screen.
// Pushing past an edge pins the cursor on it, so corners stay reachable no
// matter how far the estimate has drifted.
type cursor struct {
	width  int
	height int
	x      int
	y      int
}

func newCursor(width, height int) cursor {
	return cursor{width: width, height: height, x: width / 2, y: height / 2}
}

func (c *cursor) move(dx, dy int) {
	c.x = clamp(c.x+dx, 0, c.width-1)
	c.y = clamp(c.y+dy, 0, c.height-1)
}

func (c cursor) reading() hotcorner.Reading {
	return hotcorner.Reading{ScreenWidth: c.width, ScreenHeight: c.height, X: c.x, Y: c.y}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
