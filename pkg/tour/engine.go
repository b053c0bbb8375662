package tour

import (
	"slices"
	"time"

	"github.com/taigrr/vantage/pkg/math3d"
	"github.com/taigrr/vantage/pkg/transition"
	"github.com/taigrr/vantage/pkg/viewpoint"
)

// DisplayPrecision is the number of decimals the UI shows for poses.
// Status changes smaller than this are not reported.
const DisplayPrecision = 2

// Status is the UI-facing snapshot of the engine.
type Status struct {
	Index int // 0-based catalog index
	Total int
	Name  string
	Pose  math3d.Pose // rounded to DisplayPrecision
	State State
}

// Ordinal returns the 1-based viewpoint number for display.
func (s Status) Ordinal() int {
	return s.Index + 1
}

type subscriber struct {
	id int
	fn func(Status)
}

// Engine ties the navigation pieces together. The render driver calls
// OnFrame once per displayed frame; the UI calls the request methods
// directly on the engine it holds.
//
// Engine is not safe for concurrent use. Input arriving on other
// goroutines must be handed to the frame goroutine first.
type Engine struct {
	ctrl     *transition.Controller
	nav      *Navigator
	debounce *Debouncer
	arbiter  *Arbiter
	pose     math3d.Pose

	subs   []subscriber
	nextID int
	last   Status
}

// NewEngine creates an engine resting on the first viewpoint.
func NewEngine(cat *viewpoint.Catalog, opts ...Option) *Engine {
	o := newOptions(opts)
	e := &Engine{
		ctrl:     transition.NewController(),
		debounce: NewDebouncer(o.debounce),
		arbiter:  NewArbiter(o.fps),
		pose:     cat.Get(0).Pose,
	}
	e.nav = NewNavigator(cat, e.ctrl, e, opts...)
	e.nav.onStart = e.arbiter.Stop
	e.last = e.status()
	return e
}

// Pose returns the live camera pose.
func (e *Engine) Pose() math3d.Pose {
	return e.pose
}

// Scroll forwards a raw wheel delta to the debouncer.
func (e *Engine) Scroll(delta float64, at time.Time) {
	e.debounce.Push(delta, at)
}

// DragStart begins manual orbit control.
func (e *Engine) DragStart() {
	e.arbiter.DragStart()
}

// DragEnd ends manual orbit control.
func (e *Engine) DragEnd() {
	e.arbiter.DragEnd()
}

// Drag feeds a pointer move during a drag.
func (e *Engine) Drag(dx, dy int) {
	e.arbiter.Drag(dx, dy)
}

// RequestAdvance steps through the catalog immediately, bypassing the
// scroll debouncer.
func (e *Engine) RequestAdvance(dir Direction) {
	e.nav.RequestAdvance(dir)
	e.notify()
}

// RequestCustomPose starts a transition to pose. It reports whether the
// transition was accepted; non-finite poses never are.
func (e *Engine) RequestCustomPose(pose math3d.Pose) bool {
	ok := e.nav.RequestCustomPose(pose)
	e.notify()
	return ok
}

// OnFrame advances the engine to now and returns the pose to render.
// Within a frame the order is: debounced index update, transition start
// attempt, then either the transition tick or, when idle, the manual orbit
// step. Orbit velocity gathered while a transition runs is discarded so
// the camera rests on the target after arrival.
func (e *Engine) OnFrame(now time.Time) math3d.Pose {
	if dir, ok := e.debounce.Poll(now); ok {
		e.nav.advance(dir, now)
	}

	if e.ctrl.Active() {
		e.arbiter.Stop()
		e.pose = e.ctrl.Tick(now)
	} else {
		e.pose = e.arbiter.Apply(e.pose)
	}

	e.notify()
	return e.pose
}

// Status returns the current UI snapshot.
func (e *Engine) Status() Status {
	return e.status()
}

// Progress returns the linear progress of the running transition, or 1
// when idle.
func (e *Engine) Progress(now time.Time) float64 {
	return e.ctrl.Progress(now)
}

// Navigator returns the engine's navigation state machine.
func (e *Engine) Navigator() *Navigator {
	return e.nav
}

// Arbiter returns the engine's interaction arbiter.
func (e *Engine) Arbiter() *Arbiter {
	return e.arbiter
}

// Controller returns the engine's transition controller.
func (e *Engine) Controller() *transition.Controller {
	return e.ctrl
}

// Subscribe registers fn to receive a Status whenever the displayed values
// change. fn is called once immediately with the current status. The
// returned function removes the subscription.
func (e *Engine) Subscribe(fn func(Status)) (cancel func()) {
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	fn(e.last)

	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) status() Status {
	vp := e.nav.Current()
	return Status{
		Index: e.nav.Index(),
		Total: e.nav.Catalog().Len(),
		Name:  vp.Name,
		Pose:  e.pose.Round(DisplayPrecision),
		State: e.nav.State(),
	}
}

func (e *Engine) notify() {
	s := e.status()
	if s == e.last {
		return
	}
	e.last = s
	for _, sub := range slices.Clone(e.subs) {
		sub.fn(s)
	}
}
