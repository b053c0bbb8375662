package tour

import "time"

// Direction is a navigation intent through the catalog.
type Direction int

const (
	None Direction = iota
	Next
	Prev
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Prev:
		return "prev"
	default:
		return "none"
	}
}

// DirectionOf maps a wheel delta to a direction. Positive deltas scroll
// forward through the tour.
func DirectionOf(delta float64) Direction {
	switch {
	case delta > 0:
		return Next
	case delta < 0:
		return Prev
	default:
		return None
	}
}

// Debouncer collapses a burst of wheel events into a single intent. Every
// non-zero event restarts the quiet window; once the window elapses with no
// new event, Poll emits the direction of the last event exactly once.
//
// It is polled from the frame loop rather than fired from a timer goroutine,
// so the intent is always applied on the frame goroutine.
type Debouncer struct {
	wait    time.Duration
	pending bool
	last    time.Time
	dir     Direction
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Push records a wheel event. Zero deltas are ignored.
func (d *Debouncer) Push(delta float64, at time.Time) {
	dir := DirectionOf(delta)
	if dir == None {
		return
	}
	d.pending = true
	d.last = at
	d.dir = dir
}

// Poll returns the debounced intent if the quiet window has elapsed.
func (d *Debouncer) Poll(now time.Time) (Direction, bool) {
	if !d.pending || now.Sub(d.last) < d.wait {
		return None, false
	}
	d.pending = false
	return d.dir, true
}
