package hotcorner

import (
	"context"
	"time"
)

type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight

	cornerCount
)

// Corners lists every corner in trigger priority order.
var Corners = [cornerCount]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

type Slot struct {
	Command string
	Enabled bool
}

// Table maps each corner to its slot. It is filled once at startup and only
// read afterwards.
type Table [cornerCount]Slot

func (t Table) Slot(c Corner) Slot {
	if c < 0 || c >= cornerCount {
		return Slot{}
	}
	return t[c]
}

// Reading is one answer from the display server.
type Reading struct {
	ScreenWidth  int
	ScreenHeight int
	X            int
	Y            int
}

type PointerSample struct {
	Reading
	ObservedAt time.Time
}

type Params struct {
	Dwell     time.Duration
	Cooldown  time.Duration
	Tolerance int
}

func DefaultParams() Params {
	return Params{
		Dwell:     200 * time.Millisecond,
		Cooldown:  time.Second,
		Tolerance: 1,
	}
}

// Sampler reports the screen size and pointer position. ok is false when the
// display server had nothing usable this tick.
type Sampler interface {
	Sample() (reading Reading, ok bool)
}

type Launcher interface {
	Launch(command string) error
}

type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
