package math3d

import "math"

// Pose is a camera placement: where it sits and the point it aims at.
// Roll is not modeled.
type Pose struct {
	Position Vec3
	LookAt   Vec3
}

// NewPose creates a Pose from a position and a look-at target.
func NewPose(position, lookAt Vec3) Pose {
	return Pose{Position: position, LookAt: lookAt}
}

// Lerp interpolates position and look-at independently.
// t=0 yields p and t=1 yields to exactly.
func (p Pose) Lerp(to Pose, t float64) Pose {
	return Pose{
		Position: p.Position.Lerp(to.Position, t),
		LookAt:   p.LookAt.Lerp(to.LookAt, t),
	}
}

// Round rounds both vectors to the given number of decimal places.
func (p Pose) Round(places int) Pose {
	return Pose{
		Position: p.Position.Round(places),
		LookAt:   p.LookAt.Round(places),
	}
}

// Direction returns the unit vector from Position toward LookAt.
func (p Pose) Direction() Vec3 {
	return p.LookAt.Sub(p.Position).Normalize()
}

// Distance returns the distance between Position and LookAt.
func (p Pose) Distance() float64 {
	return p.Position.Distance(p.LookAt)
}

// Finite reports whether every coordinate is a real number, neither NaN
// nor infinite.
func (p Pose) Finite() bool {
	for _, v := range [...]float64{
		p.Position.X, p.Position.Y, p.Position.Z,
		p.LookAt.X, p.LookAt.Y, p.LookAt.Z,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
