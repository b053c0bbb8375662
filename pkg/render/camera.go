package render

import (
	"math"

	"github.com/taigrr/vantage/pkg/math3d"
)

// Camera is a perspective camera placed by a position and a look-at target.
type Camera struct {
	// Position in world space
	Position math3d.Vec3
	// Target is the point the camera aims at
	Target math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
}

// NewCamera creates a new camera with default settings.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 10, 10),
		Target:      math3d.Zero3(),
		FOV:         math.Pi / 3, // 60 degrees
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetPose places the camera at p.Position aiming at p.LookAt.
func (c *Camera) SetPose(p math3d.Pose) {
	if c.Position == p.Position && c.Target == p.LookAt {
		return
	}
	c.Position = p.Position
	c.Target = p.LookAt
	c.viewDirty = true
}

// Pose returns the camera placement.
func (c *Camera) Pose() math3d.Pose {
	return math3d.NewPose(c.Position, c.Target)
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Forward returns the unit view direction. A camera whose target equals
// its position looks down -Z.
func (c *Camera) Forward() math3d.Vec3 {
	if c.Target.ApproxEqual(c.Position, 1e-9) {
		return math3d.V3(0, 0, -1)
	}
	return c.Target.Sub(c.Position).Normalize()
}

// up returns the world up vector, swapped for +Z when looking straight
// down or up so the view basis stays defined.
func (c *Camera) up() math3d.Vec3 {
	f := c.Forward()
	if math.Abs(f.Dot(math3d.Up())) > 0.999 {
		return math3d.V3(0, 0, -1)
	}
	return math3d.Up()
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	c.update()
	return c.viewProjMatrix
}

func (c *Camera) update() {
	if !c.viewDirty && !c.projDirty {
		return
	}
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Position, c.Position.Add(c.Forward()), c.up())
		c.viewDirty = false
	}
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	c.viewProjMatrix = c.projMatrix.Mul(c.viewMatrix)
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))

	// Behind camera
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, ndc.Z, true
}
