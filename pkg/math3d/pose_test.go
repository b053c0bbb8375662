package math3d

import (
	"math"
	"testing"
)

func TestPoseLerpEndpoints(t *testing.T) {
	from := NewPose(V3(0.1, 0.2, 0.3), V3(1, 1, 1))
	to := NewPose(V3(10.7, -3.3, 0.9), V3(-2.2, 4.4, 8.8))

	if got := from.Lerp(to, 0); got != from {
		t.Errorf("Lerp(0) = %v, want %v", got, from)
	}
	if got := from.Lerp(to, 1); got != to {
		t.Errorf("Lerp(1) = %v, want %v", got, to)
	}
}

func TestPoseLerpMidpoint(t *testing.T) {
	from := NewPose(V3(0, 0, 0), V3(0, 0, 0))
	to := NewPose(V3(10, 20, -30), V3(2, 4, 6))

	got := from.Lerp(to, 0.5)
	want := NewPose(V3(5, 10, -15), V3(1, 2, 3))
	if !got.Position.ApproxEqual(want.Position, 1e-12) || !got.LookAt.ApproxEqual(want.LookAt, 1e-12) {
		t.Errorf("Lerp(0.5) = %v, want %v", got, want)
	}
}

func TestPoseRound(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"already round", V3(1, 2, 3), V3(1, 2, 3)},
		{"round half up", V3(1.004, 2.346, 0.125), V3(1, 2.35, 0.13)},
		{"negative", V3(-1.236, -0.001, -9.999), V3(-1.24, 0, -10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewPose(tc.in, tc.in).Round(2)
			if !got.Position.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("Round(%v) = %v, want %v", tc.in, got.Position, tc.want)
			}
			if math.Signbit(got.Position.Y) && got.Position.Y == 0 {
				t.Errorf("Round produced negative zero")
			}
		})
	}
}

func TestPoseDirection(t *testing.T) {
	p := NewPose(V3(0, 0, 10), Zero3())
	dir := p.Direction()
	if !dir.ApproxEqual(V3(0, 0, -1), 1e-12) {
		t.Errorf("Direction() = %v, want (0,0,-1)", dir)
	}
	if d := p.Distance(); math.Abs(d-10) > 1e-12 {
		t.Errorf("Distance() = %v, want 10", d)
	}
}

func TestPoseFinite(t *testing.T) {
	tests := []struct {
		name string
		p    Pose
		want bool
	}{
		{"zero", Pose{}, true},
		{"regular", NewPose(V3(1, 2, 3), V3(-4, 0.5, 6)), true},
		{"nan position", NewPose(V3(math.NaN(), 0, 0), Zero3()), false},
		{"inf look-at", NewPose(Zero3(), V3(0, 0, math.Inf(-1))), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Finite(); got != tc.want {
				t.Errorf("Finite() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotateAroundUp(t *testing.T) {
	got := Rotate(Up(), math.Pi/2).MulVec3(V3(1, 0, 0))
	if !got.ApproxEqual(V3(0, 0, -1), 1e-9) {
		t.Errorf("Rotate(up, 90°)·X = %v, want (0,0,-1)", got)
	}
}

func TestFromQuatIdentity(t *testing.T) {
	m := FromQuat([4]float64{0, 0, 0, 1})
	if m != Identity() {
		t.Errorf("FromQuat(identity) = %v, want identity", m)
	}
}

func TestFromQuatMatchesRotate(t *testing.T) {
	angle := 0.7
	half := angle / 2
	q := [4]float64{0, math.Sin(half), 0, math.Cos(half)}

	v := V3(3, -1, 2)
	a := FromQuat(q).MulVec3(v)
	b := Rotate(Up(), angle).MulVec3(v)
	if !a.ApproxEqual(b, 1e-9) {
		t.Errorf("FromQuat rotation = %v, Rotate = %v", a, b)
	}
}
