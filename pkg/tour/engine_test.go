package tour

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/vantage/pkg/math3d"
)

func TestEngineStartsAtFirstViewpoint(t *testing.T) {
	clock := &fakeClock{now: t0}
	e, cat := newTestEngine(t, clock)

	if e.Pose() != cat.Get(0).Pose {
		t.Errorf("initial pose = %v, want %v", e.Pose(), cat.Get(0).Pose)
	}
	s := e.Status()
	if s.Ordinal() != 1 || s.Total != 6 || s.Name != "vp0" || s.State != Idle {
		t.Errorf("initial status = %+v", s)
	}
}

func TestEngineDebouncedScroll(t *testing.T) {
	clock := &fakeClock{now: t0}
	e, cat := newTestEngine(t, clock, WithDebounce(100*time.Millisecond))

	e.Scroll(1, at(0))
	e.OnFrame(at(16))
	e.Scroll(1, at(30))
	e.OnFrame(at(33))
	e.Scroll(-1, at(60))

	for _, ms := range []int{66, 100, 150} {
		e.OnFrame(at(ms))
		if e.Navigator().Index() != 0 {
			t.Fatalf("index changed at %dms before the burst settled", ms)
		}
	}

	e.OnFrame(at(160))
	if got := e.Navigator().Index(); got != cat.Len()-1 {
		t.Errorf("index = %d, want %d (one Prev step)", got, cat.Len()-1)
	}
	if e.Navigator().State() != Transitioning {
		t.Error("debounced intent should start a transition in the same frame")
	}
	if !e.Controller().StartedAt().Equal(at(160)) {
		t.Errorf("transition start = %v, want frame time", e.Controller().StartedAt())
	}

	e.OnFrame(at(400))
	if got := e.Navigator().Index(); got != cat.Len()-1 {
		t.Errorf("burst should produce a single step, index = %d", got)
	}
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	clock := &fakeClock{now: t0}
	e, _ := newTestEngine(t, clock)

	var got []Status
	cancel := e.Subscribe(func(s Status) { got = append(got, s) })

	if len(got) != 1 {
		t.Fatalf("Subscribe should deliver the current status, got %d calls", len(got))
	}

	e.OnFrame(at(16))
	e.OnFrame(at(33))
	if len(got) != 1 {
		t.Errorf("idle frames should not notify, got %d calls", len(got))
	}

	e.RequestAdvance(Next)
	if len(got) != 2 {
		t.Fatalf("advance should notify immediately, got %d calls", len(got))
	}
	if got[1].Ordinal() != 2 || got[1].Name != "vp1" || got[1].State != Transitioning {
		t.Errorf("status after advance = %+v", got[1])
	}

	e.OnFrame(at(1000))
	n := len(got)
	if n < 3 {
		t.Fatalf("moving camera should notify, got %d calls", n)
	}

	e.OnFrame(at(2000))
	last := got[len(got)-1]
	if last.State != Idle {
		t.Errorf("completion should notify idle state, got %v", last.State)
	}

	cancel()
	e.RequestAdvance(Next)
	e.OnFrame(at(3000))
	if len(got) != n+1 {
		t.Errorf("cancelled subscriber still notified: %d calls", len(got))
	}
}

func TestSubscribeIgnoresSubPrecisionChanges(t *testing.T) {
	clock := &fakeClock{now: t0}
	cat := sixViewpoints(t)
	e := NewEngine(cat, WithClock(clock.Now), WithDuration(2*time.Second))

	// Target differs from the start by less than the display precision.
	start := cat.Get(0).Pose
	nudge := math3d.NewPose(start.Position.Add(math3d.V3(0.001, 0, 0)), start.LookAt)

	calls := 0
	e.Subscribe(func(Status) { calls++ })

	e.RequestCustomPose(nudge)
	afterStart := calls
	for ms := 16; ms < 2000; ms += 16 {
		e.OnFrame(at(ms))
	}
	if calls != afterStart {
		t.Errorf("sub-precision motion notified %d extra times", calls-afterStart)
	}
}

func TestSubscribeCancelDuringNotify(t *testing.T) {
	clock := &fakeClock{now: t0}
	e, _ := newTestEngine(t, clock)

	var cancelA func()
	a, b := 0, 0
	cancelA = e.Subscribe(func(Status) {
		a++
		if cancelA != nil {
			cancelA()
		}
	})
	e.Subscribe(func(Status) { b++ })

	e.RequestAdvance(Next)
	e.RequestAdvance(Next)
	if a != 2 {
		t.Errorf("a called %d times, want 2 (initial + first change)", a)
	}
	if b != 3 {
		t.Errorf("b called %d times, want 3", b)
	}
}

func TestTransitionClearsOrbitCoast(t *testing.T) {
	clock := &fakeClock{now: t0}
	e, cat := newTestEngine(t, clock)

	e.DragStart()
	e.Drag(20, 0)
	e.DragEnd()
	if !e.Arbiter().Moving() {
		t.Fatal("flick should leave orbit velocity")
	}

	e.RequestAdvance(Next)
	if e.Arbiter().Moving() {
		t.Error("accepted transition should stop the orbit coast")
	}

	// A late flick during the flight must not push the camera off target.
	e.OnFrame(at(1000))
	e.DragStart()
	e.Drag(20, 0)
	e.DragEnd()

	target := cat.Get(1).Pose
	for _, ms := range []int{2000, 2016, 2033} {
		if got := e.OnFrame(at(ms)); got != target {
			t.Errorf("pose at %dms = %v, want target %v", ms, got, target)
		}
	}
	if e.Arbiter().Moving() {
		t.Error("orbit still coasting after arrival")
	}
}

func TestRejectedAdvanceKeepsOrbit(t *testing.T) {
	clock := &fakeClock{now: t0}
	e, _ := newTestEngine(t, clock)

	e.RequestAdvance(Next)
	e.OnFrame(at(500))
	e.DragStart()
	e.Drag(5, 0)
	e.DragEnd()

	// The second request is dropped, so the start hook must not fire.
	e.RequestAdvance(Next)
	if !e.Arbiter().Moving() {
		t.Error("rejected request should not touch the arbiter")
	}
}

func TestCustomPoseRejectsNonFinite(t *testing.T) {
	clock := &fakeClock{now: t0}
	e, _ := newTestEngine(t, clock)

	calls := 0
	e.Subscribe(func(Status) { calls++ })

	bad := math3d.NewPose(math3d.V3(math.NaN(), 0, 0), math3d.Zero3())
	if e.RequestCustomPose(bad) {
		t.Fatal("NaN pose should be rejected")
	}
	if e.Controller().Active() {
		t.Fatal("rejected pose started a transition")
	}
	for _, ms := range []int{16, 33, 50} {
		e.OnFrame(at(ms))
	}
	if calls != 1 {
		t.Errorf("subscriber called %d times, want only the initial call", calls)
	}

	inf := math3d.NewPose(math3d.Zero3(), math3d.V3(0, math.Inf(1), 0))
	if e.RequestCustomPose(inf) {
		t.Error("infinite pose should be rejected")
	}
}
