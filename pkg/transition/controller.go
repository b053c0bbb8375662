package transition

import (
	"time"

	"github.com/taigrr/vantage/pkg/math3d"
)

// Controller runs at most one camera transition at a time. A Start while a
// transition is in flight is dropped, not queued.
//
// Controller is not safe for concurrent use; it is meant to be driven from
// a single frame loop.
type Controller struct {
	active   bool
	from     math3d.Pose
	to       math3d.Pose
	start    time.Time
	duration time.Duration
}

// NewController creates an idle controller.
func NewController() *Controller {
	return &Controller{}
}

// Start begins a transition from one pose to another. It returns false and
// leaves the current transition untouched if one is already active.
func (c *Controller) Start(from, to math3d.Pose, d time.Duration, now time.Time) bool {
	if c.active {
		return false
	}
	c.active = true
	c.from = from
	c.to = to
	c.start = now
	c.duration = d
	return true
}

// Tick returns the eased pose for now. When the transition reaches its end
// the target pose is returned exactly and the controller goes idle.
// Tick on an idle controller returns the last target.
func (c *Controller) Tick(now time.Time) math3d.Pose {
	if !c.active {
		return c.to
	}
	t := c.Progress(now)
	if t >= 1 {
		c.active = false
		return c.to
	}
	return c.from.Lerp(c.to, EaseInOutCubic(t))
}

// Progress returns linear progress in [0, 1] at now. A non-positive
// duration is complete immediately.
func (c *Controller) Progress(now time.Time) float64 {
	if !c.active {
		return 1
	}
	if c.duration <= 0 {
		return 1
	}
	return clamp01(float64(now.Sub(c.start)) / float64(c.duration))
}

// Active reports whether a transition is in flight.
func (c *Controller) Active() bool {
	return c.active
}

// From returns the start pose of the current or last transition.
func (c *Controller) From() math3d.Pose {
	return c.from
}

// Target returns the destination of the current or last transition.
func (c *Controller) Target() math3d.Pose {
	return c.to
}

// StartedAt returns when the current or last transition began.
func (c *Controller) StartedAt() time.Time {
	return c.start
}
