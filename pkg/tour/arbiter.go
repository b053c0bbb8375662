package tour

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/vantage/pkg/math3d"
)

// restVelocity is the angular speed below which an orbit axis stops.
const restVelocity = 1e-4

// minPolar keeps the orbiting camera off the vertical axis so the view
// never flips over the pole.
const minPolar = 0.05

// OrbitAxis is one angular degree of freedom of the manual orbit. Drag
// impulses add velocity; a critically damped spring pulls it back to 0.
type OrbitAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

// NewOrbitAxis creates an axis whose velocity decays smoothly at fps.
func NewOrbitAxis(fps int) OrbitAxis {
	return OrbitAxis{
		// Frequency 6.0 settles a flick in roughly half a second, damping 1.0 = no overshoot
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Step returns the angle to apply this frame and decays the velocity.
func (a *OrbitAxis) Step() float64 {
	step := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	if math.Abs(a.Velocity) < restVelocity && math.Abs(a.velAccel) < restVelocity {
		a.Velocity, a.velAccel = 0, 0
	}
	return step
}

// Moving reports whether the axis still has velocity.
func (a *OrbitAxis) Moving() bool {
	return a.Velocity != 0
}

// Arbiter decides who writes the camera pose in a frame. Manual orbit
// dragging and scripted transitions may overlap; the engine applies the
// orbit step first and the transition tick after it, so an active
// transition always wins and manual control is authoritative otherwise.
type Arbiter struct {
	dragging    bool
	Yaw, Pitch  OrbitAxis
	Sensitivity float64 // radians of impulse per cell dragged
	fps         int
}

// NewArbiter creates an arbiter whose orbit springs run at fps.
func NewArbiter(fps int) *Arbiter {
	return &Arbiter{
		Yaw:         NewOrbitAxis(fps),
		Pitch:       NewOrbitAxis(fps),
		Sensitivity: 0.02,
		fps:         fps,
	}
}

// DragStart marks the beginning of a manual drag.
func (a *Arbiter) DragStart() {
	a.dragging = true
}

// DragEnd marks the end of a manual drag. Remaining orbit velocity coasts
// to a stop.
func (a *Arbiter) DragEnd() {
	a.dragging = false
}

// Dragging reports whether the user is manipulating the camera.
func (a *Arbiter) Dragging() bool {
	return a.dragging
}

// Drag adds orbit impulse for a pointer move of (dx, dy) cells. Moves
// outside a drag are ignored.
func (a *Arbiter) Drag(dx, dy int) {
	if !a.dragging {
		return
	}
	a.Yaw.Velocity -= float64(dx) * a.Sensitivity
	a.Pitch.Velocity -= float64(dy) * a.Sensitivity
}

// Stop clears any coasting orbit velocity.
func (a *Arbiter) Stop() {
	a.Yaw = NewOrbitAxis(a.fps)
	a.Pitch = NewOrbitAxis(a.fps)
}

// Moving reports whether the orbit will change the pose this frame.
func (a *Arbiter) Moving() bool {
	return a.Yaw.Moving() || a.Pitch.Moving()
}

// Apply advances the orbit one frame and returns the pose rotated around
// its look-at point.
func (a *Arbiter) Apply(p math3d.Pose) math3d.Pose {
	if !a.Moving() {
		return p
	}
	return Orbit(p, a.Yaw.Step(), a.Pitch.Step())
}

// Orbit rotates the camera position around the look-at point by yaw
// (around world up) and pitch (toward or away from the pole). The distance
// to the target is preserved.
func Orbit(p math3d.Pose, yaw, pitch float64) math3d.Pose {
	offset := p.Position.Sub(p.LookAt)
	r := offset.Len()
	if r == 0 {
		return p
	}
	offset = math3d.Rotate(math3d.Up(), yaw).MulVec3Dir(offset)

	polar := math.Acos(clamp(offset.Y/r, -1, 1))
	azimuth := math.Atan2(offset.X, offset.Z)
	polar = clamp(polar+pitch, minPolar, math.Pi-minPolar)

	sinP := math.Sin(polar)
	offset = math3d.V3(
		r*sinP*math.Sin(azimuth),
		r*math.Cos(polar),
		r*sinP*math.Cos(azimuth),
	)
	return math3d.NewPose(p.LookAt.Add(offset), p.LookAt)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
