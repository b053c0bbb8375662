package tour

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/vantage/pkg/math3d"
)

func TestOrbitPreservesDistanceAndTarget(t *testing.T) {
	p := math3d.NewPose(math3d.V3(10, 5, 20), math3d.V3(1, 0, -2))
	r := p.Distance()

	tests := []struct {
		name       string
		yaw, pitch float64
	}{
		{"yaw only", 0.4, 0},
		{"pitch only", 0, -0.3},
		{"both", -1.2, 0.2},
		{"full turn", 2 * math.Pi, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Orbit(p, tc.yaw, tc.pitch)
			if got.LookAt != p.LookAt {
				t.Errorf("LookAt moved to %v", got.LookAt)
			}
			if math.Abs(got.Distance()-r) > 1e-9 {
				t.Errorf("distance = %v, want %v", got.Distance(), r)
			}
		})
	}
}

func TestOrbitFullTurnReturns(t *testing.T) {
	p := math3d.NewPose(math3d.V3(10, 5, 20), math3d.Zero3())
	got := Orbit(p, 2*math.Pi, 0)
	if !got.Position.ApproxEqual(p.Position, 1e-9) {
		t.Errorf("full yaw turn = %v, want %v", got.Position, p.Position)
	}
}

func TestOrbitYawQuarterTurn(t *testing.T) {
	p := math3d.NewPose(math3d.V3(10, 0, 0), math3d.Zero3())
	got := Orbit(p, math.Pi/2, 0)
	if !got.Position.ApproxEqual(math3d.V3(0, 0, -10), 1e-9) {
		t.Errorf("quarter yaw = %v, want (0, 0, -10)", got.Position)
	}
}

func TestOrbitClampsAtPole(t *testing.T) {
	p := math3d.NewPose(math3d.V3(0, 0, 10), math3d.Zero3())
	got := Orbit(p, 0, -10)
	polar := math.Acos(got.Position.Y / got.Distance())
	if polar < minPolar-1e-9 {
		t.Errorf("polar angle %v passed the pole clamp", polar)
	}
}

func TestOrbitDegeneratePose(t *testing.T) {
	p := math3d.NewPose(math3d.V3(1, 1, 1), math3d.V3(1, 1, 1))
	if got := Orbit(p, 1, 1); got != p {
		t.Errorf("Orbit with zero radius = %v, want unchanged", got)
	}
}

func TestArbiterIgnoresMoveWithoutDrag(t *testing.T) {
	a := NewArbiter(60)
	a.Drag(10, 4)
	if a.Moving() {
		t.Error("pointer motion without a drag should not orbit")
	}

	a.DragStart()
	if !a.Dragging() {
		t.Fatal("Dragging should be true after DragStart")
	}
	a.Drag(10, 4)
	if !a.Moving() {
		t.Error("drag should add orbit velocity")
	}

	a.DragEnd()
	if a.Dragging() {
		t.Error("Dragging should be false after DragEnd")
	}
}

func TestArbiterVelocityDecays(t *testing.T) {
	a := NewArbiter(60)
	a.DragStart()
	a.Drag(20, 0)
	a.DragEnd()

	p := math3d.NewPose(math3d.V3(0, 5, 20), math3d.Zero3())
	for range 600 {
		p = a.Apply(p)
	}
	if a.Moving() {
		t.Errorf("orbit should come to rest, velocity = %v", a.Yaw.Velocity)
	}
}

func TestArbiterStop(t *testing.T) {
	a := NewArbiter(60)
	a.DragStart()
	a.Drag(5, 5)
	a.Stop()
	if a.Moving() {
		t.Error("Stop should clear orbit velocity")
	}
}

func TestManualDragAuthoritativeWhenIdle(t *testing.T) {
	clock := &fakeClock{now: t0}
	e, cat := newTestEngine(t, clock)

	e.DragStart()
	e.Drag(6, 0)
	got := e.OnFrame(at(16))

	start := cat.Get(0).Pose
	if got.Position == start.Position {
		t.Error("idle drag should move the camera")
	}
	if got.LookAt != start.LookAt {
		t.Errorf("drag should orbit around the look-at point, got %v", got.LookAt)
	}
}

func TestTransitionOverridesDragInSameFrame(t *testing.T) {
	clock := &fakeClock{now: t0}
	e, cat := newTestEngine(t, clock)

	e.RequestAdvance(Next)
	e.DragStart()
	e.Drag(30, 10)

	now := at(700)
	got := e.OnFrame(now)

	// Drag input is discarded while the transition owns the camera.
	progress := float64(700*time.Millisecond) / float64(2*time.Second)
	want := cat.Get(0).Pose.Lerp(cat.Get(1).Pose, easeForTest(progress))
	if !got.Position.ApproxEqual(want.Position, 1e-9) || !got.LookAt.ApproxEqual(want.LookAt, 1e-9) {
		t.Errorf("pose = %v, want scripted %v", got, want)
	}
}

func easeForTest(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
