package hotcorner

import "time"

type Phase int

const (
	Moving Phase = iota
	DwellPending
	Suppressed
)

func (p Phase) String() string {
	switch p {
	case Moving:
		return "moving"
	case DwellPending:
		return "dwell-pending"
	case Suppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}

// State is the detector memory carried between samples. The zero
// SuppressedUntil means no cooldown is active.
type State struct {
	LastX           int
	LastY           int
	LastMove        time.Time
	SuppressedUntil time.Time

	phase Phase
}

// NewState returns a state whose last position cannot match any real sample,
// so the first sample is always classified as movement.
func NewState() State {
	return State{LastX: -1, LastY: -1}
}

func (s *State) Phase() Phase {
	return s.phase
}

// Detect feeds one sample through the state machine and reports the corner
// that fired, if any. A fire starts the cooldown.
func Detect(st *State, sample PointerSample, table Table, p Params) (Corner, bool) {
	now := sample.ObservedAt

	if !st.SuppressedUntil.IsZero() {
		if now.Before(st.SuppressedUntil) {
			st.phase = Suppressed
			return 0, false
		}
		st.SuppressedUntil = time.Time{}
		st.LastMove = now
	}

	if sample.X != st.LastX || sample.Y != st.LastY {
		st.LastX = sample.X
		st.LastY = sample.Y
		st.LastMove = now
		st.phase = Moving
		return 0, false
	}

	st.phase = DwellPending
	if now.Sub(st.LastMove) < p.Dwell {
		return 0, false
	}

	corner, ok := matchCorner(sample.Reading, table, p.Tolerance)
	if !ok {
		return 0, false
	}

	st.SuppressedUntil = now.Add(p.Cooldown)
	st.phase = Suppressed
	return corner, true
}

func matchCorner(r Reading, table Table, tol int) (Corner, bool) {
	for _, corner := range Corners {
		if inCorner(corner, r, tol) && table.Slot(corner).Enabled {
			return corner, true
		}
	}
	return 0, false
}

func inCorner(c Corner, r Reading, tol int) bool {
	left := r.X <= tol
	right := r.X >= r.ScreenWidth-1-tol
	top := r.Y <= tol
	bottom := r.Y >= r.ScreenHeight-1-tol

	switch c {
	case TopLeft:
		return left && top
	case TopRight:
		return right && top
	case BottomLeft:
		return left && bottom
	case BottomRight:
		return right && bottom
	default:
		return false
	}
}
