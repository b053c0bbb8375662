// Package tour is the viewpoint navigation engine: it turns scroll bursts,
// drag gestures and custom pose requests into a camera pose every frame.
package tour

import (
	"log"
	"time"

	"github.com/taigrr/vantage/pkg/math3d"
	"github.com/taigrr/vantage/pkg/transition"
	"github.com/taigrr/vantage/pkg/viewpoint"
)

// State is the navigation state. It is derived from the transition
// controller and never stored separately.
type State int

const (
	Idle State = iota
	Transitioning
)

func (s State) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// PoseSource reports the live camera pose a transition starts from.
type PoseSource interface {
	Pose() math3d.Pose
}

// Navigator owns the current catalog index and arms transitions toward the
// selected viewpoint.
type Navigator struct {
	catalog  *viewpoint.Catalog
	ctrl     *transition.Controller
	camera   PoseSource
	index    int
	duration time.Duration
	now      func() time.Time
	logger   *log.Logger

	// onStart runs after the controller accepts a transition.
	onStart func()
}

// NewNavigator creates a navigator positioned at the first viewpoint.
// It honors WithDuration, WithClock and WithLogger.
func NewNavigator(cat *viewpoint.Catalog, ctrl *transition.Controller, camera PoseSource, opts ...Option) *Navigator {
	o := newOptions(opts)
	return &Navigator{
		catalog:  cat,
		ctrl:     ctrl,
		camera:   camera,
		duration: o.duration,
		now:      o.now,
		logger:   o.logger,
	}
}

// RequestAdvance moves the index one step and starts a transition toward
// the new viewpoint. The index changes even if the transition is rejected
// because another one is still in flight.
func (n *Navigator) RequestAdvance(dir Direction) {
	n.advance(dir, n.now())
}

// RequestCustomPose starts a transition to an arbitrary pose without
// touching the index. Poses with NaN or infinite coordinates are refused.
func (n *Navigator) RequestCustomPose(pose math3d.Pose) bool {
	if !pose.Finite() {
		n.logger.Printf("custom pose rejected: non-finite %v", pose)
		return false
	}
	return n.startAt(pose, n.now())
}

func (n *Navigator) advance(dir Direction, now time.Time) {
	switch dir {
	case Next:
		n.index = n.catalog.Next(n.index)
	case Prev:
		n.index = n.catalog.Prev(n.index)
	default:
		return
	}
	vp := n.catalog.Get(n.index)
	n.logger.Printf("navigate %s -> %d %q", dir, n.index, vp.Name)
	n.startAt(vp.Pose, now)
}

func (n *Navigator) startAt(target math3d.Pose, now time.Time) bool {
	if !n.ctrl.Start(n.camera.Pose(), target, n.duration, now) {
		n.logger.Printf("transition rejected: already heading to %v", n.ctrl.Target())
		return false
	}
	if n.onStart != nil {
		n.onStart()
	}
	return true
}

// Index returns the current 0-based catalog index.
func (n *Navigator) Index() int {
	return n.index
}

// Current returns the viewpoint at the current index.
func (n *Navigator) Current() viewpoint.Viewpoint {
	return n.catalog.Get(n.index)
}

// Catalog returns the catalog being navigated.
func (n *Navigator) Catalog() *viewpoint.Catalog {
	return n.catalog
}

// State reports whether a transition is in flight.
func (n *Navigator) State() State {
	if n.ctrl.Active() {
		return Transitioning
	}
	return Idle
}

// Duration returns the transition duration used for new requests.
func (n *Navigator) Duration() time.Duration {
	return n.duration
}
