package render

import (
	"math"

	"github.com/taigrr/vantage/pkg/math3d"
)

// Vertex represents a world-space vertex with all attributes.
type Vertex struct {
	Position math3d.Vec3 // World position
	Normal   math3d.Vec3 // Normal vector (for lighting)
	Color    Color       // Vertex color
}

// Triangle represents a triangle with 3 vertices.
type Triangle struct {
	V [3]Vertex
}

// Lighting terms shared by every shaded triangle.
const (
	ambient = 0.3
	diffuse = 0.7
)

// Rasterizer handles triangle rasterization with Z-buffering.
type Rasterizer struct {
	camera                 *Camera
	fb                     *Framebuffer
	zbuffer                []float64    // Depth buffer (1D array, row-major)
	frustum                Frustum      // Frustum planes for the current frame
	CullingStats           CullingStats // Statistics for debugging/benchmarking
	DisableBackfaceCulling bool         // If true, render both sides of triangles
}

// CullingStats tracks frustum culling statistics.
type CullingStats struct {
	MeshesTested int // Total meshes tested for culling
	MeshesCulled int // Meshes culled (not rendered)
	MeshesDrawn  int // Meshes that passed culling
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera: camera,
		fb:     fb,
	}
	r.Resize()
	r.UpdateFrustum()
	return r
}

// Resize resizes the rasterizer's buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// BeginFrame clears color and depth, resets culling statistics and
// recomputes the frustum from the camera.
func (r *Rasterizer) BeginFrame(bg Color) {
	r.fb.Clear(bg)
	r.ClearDepth()
	r.CullingStats = CullingStats{}
	r.UpdateFrustum()
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// UpdateFrustum recalculates the frustum planes from the camera.
func (r *Rasterizer) UpdateFrustum() {
	r.frustum = NewFrustumFromMatrix(r.camera.ViewProjectionMatrix())
}

// Frustum returns the frustum computed by the last UpdateFrustum.
func (r *Rasterizer) Frustum() Frustum {
	return r.frustum
}

// IsVisible tests if a world-space AABB is visible in the frustum.
func (r *Rasterizer) IsVisible(worldBounds AABB) bool {
	return r.frustum.IntersectAABB(worldBounds)
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// clipVertex is a vertex in homogeneous clip space.
type clipVertex struct {
	Pos   math3d.Vec4
	Color Color
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y  float64 // Screen coordinates
	Z     float64 // Depth (for Z-buffer)
	Color Color
}

// nearDistance is the signed distance of v to the near plane (z = -w).
func nearDistance(v clipVertex) float64 {
	return v.Pos.Z + v.Pos.W
}

func lerpClip(a, b clipVertex, t float64) clipVertex {
	return clipVertex{
		Pos: math3d.Vec4{
			X: a.Pos.X + (b.Pos.X-a.Pos.X)*t,
			Y: a.Pos.Y + (b.Pos.Y-a.Pos.Y)*t,
			Z: a.Pos.Z + (b.Pos.Z-a.Pos.Z)*t,
			W: a.Pos.W + (b.Pos.W-a.Pos.W)*t,
		},
		Color: lerpColor(a.Color, b.Color, t),
	}
}

// clipNear clips a convex polygon against the near plane
// (Sutherland-Hodgman). The result has 0, 3 or 4 vertices for a triangle.
func clipNear(in []clipVertex, out []clipVertex) []clipVertex {
	out = out[:0]
	for i := range in {
		a := in[i]
		b := in[(i+1)%len(in)]
		da, db := nearDistance(a), nearDistance(b)

		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpClip(a, b, da/(da-db)))
		}
	}
	return out
}

// toScreen performs the perspective divide and viewport mapping.
func (r *Rasterizer) toScreen(v clipVertex) screenVertex {
	ndc := v.Pos.PerspectiveDivide()
	return screenVertex{
		X:     (ndc.X + 1) * 0.5 * float64(r.Width()),
		Y:     (1 - ndc.Y) * 0.5 * float64(r.Height()), // Y flipped
		Z:     ndc.Z,
		Color: v.Color,
	}
}

// shade returns c lit by a directional light for the given normal.
func shade(c Color, normal, lightDir math3d.Vec3) Color {
	intensity := ambient + diffuse*math.Max(0, normal.Dot(lightDir))
	return MultiplyColor(c, intensity)
}

// DrawTriangleGouraud rasterizes a triangle with Gouraud shading (per-vertex lighting).
// Lighting is calculated at each vertex and interpolated across the triangle.
// Triangles crossing the near plane are clipped.
func (r *Rasterizer) DrawTriangleGouraud(tri Triangle, lightDir math3d.Vec3) {
	viewProj := r.camera.ViewProjectionMatrix()
	normLight := lightDir.Normalize()

	var in [3]clipVertex
	for i := range 3 {
		in[i] = clipVertex{
			Pos:   viewProj.MulVec4(math3d.V4FromV3(tri.V[i].Position, 1)),
			Color: shade(tri.V[i].Color, tri.V[i].Normal, normLight),
		}
	}

	var buf [4]clipVertex
	poly := clipNear(in[:], buf[:0])
	if len(poly) < 3 {
		return // Entirely in front of the near plane
	}

	var sv [4]screenVertex
	for i, v := range poly {
		sv[i] = r.toScreen(v)
	}
	for i := 1; i+1 < len(poly); i++ {
		r.fillTriangle(sv[0], sv[i], sv[i+1])
	}
}

// fillTriangle rasterizes a screen-space triangle with depth testing.
// Counter-clockwise world winding appears clockwise on screen because Y
// is flipped, so front faces have a negative signed area.
func (r *Rasterizer) fillTriangle(a, b, c screenVertex) {
	area := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if area == 0 {
		return
	}
	if area > 0 && !r.DisableBackfaceCulling {
		return // Back-facing
	}

	// Find bounding box
	minX := int(math.Max(0, math.Floor(min3(a.X, b.X, c.X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(a.X, b.X, c.X))))
	minY := int(math.Max(0, math.Floor(min3(a.Y, b.Y, c.Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(a.Y, b.Y, c.Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(a.X, a.Y, b.X, b.Y, c.X, c.Y, px, py)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*a.Z + bc.Y*b.Z + bc.Z*c.Z
			if z >= r.getDepth(x, y) {
				continue
			}

			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, interpolateColor3(a.Color, b.Color, c.Color, bc))
		}
	}
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

// interpolateColor3 interpolates between 3 colors using barycentric coords.
func interpolateColor3(c0, c1, c2 Color, bc math3d.Vec3) Color {
	return RGB(
		uint8(float64(c0.R)*bc.X+float64(c1.R)*bc.Y+float64(c2.R)*bc.Z),
		uint8(float64(c0.G)*bc.X+float64(c1.G)*bc.Y+float64(c2.G)*bc.Z),
		uint8(float64(c0.B)*bc.X+float64(c1.B)*bc.Y+float64(c2.B)*bc.Z),
	)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// MeshRenderer is the read side of models.Mesh.
// Vertices are already in world space.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// culled reports whether a mesh with bounds lies outside the frustum.
func (r *Rasterizer) culled(mesh MeshRenderer) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}

	r.CullingStats.MeshesTested++
	minBounds, maxBounds := bounded.GetBounds()
	if !r.IsVisible(NewAABB(minBounds, maxBounds)) {
		r.CullingStats.MeshesCulled++
		return true
	}
	r.CullingStats.MeshesDrawn++
	return false
}

// DrawMesh renders a mesh with Gouraud shading.
// Automatically performs frustum culling if the mesh provides bounds.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, color Color, lightDir math3d.Vec3) {
	if r.culled(mesh) {
		return
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)
		var tri Triangle
		for k := range 3 {
			p, n := mesh.GetVertex(face[k])
			tri.V[k] = Vertex{Position: p, Normal: n, Color: color}
		}
		r.DrawTriangleGouraud(tri, lightDir)
	}
}

// DrawMeshWireframe renders a mesh as wireframe.
// Automatically performs frustum culling if the mesh provides bounds.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, color Color) {
	if r.culled(mesh) {
		return
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)

		p0, _ := mesh.GetVertex(face[0])
		p1, _ := mesh.GetVertex(face[1])
		p2, _ := mesh.GetVertex(face[2])

		r.DrawLine3D(p0, p1, color)
		r.DrawLine3D(p1, p2, color)
		r.DrawLine3D(p2, p0, color)
	}
}

// DrawLine3D projects a world-space segment, clipped at the near plane.
// Lines ignore the depth buffer.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, color Color) {
	viewProj := r.camera.ViewProjectionMatrix()
	ca := clipVertex{Pos: viewProj.MulVec4(math3d.V4FromV3(a, 1))}
	cb := clipVertex{Pos: viewProj.MulVec4(math3d.V4FromV3(b, 1))}

	da, db := nearDistance(ca), nearDistance(cb)
	switch {
	case da < 0 && db < 0:
		return
	case da < 0:
		ca = lerpClip(ca, cb, da/(da-db))
	case db < 0:
		cb = lerpClip(cb, ca, db/(db-da))
	}

	sa, sb := r.toScreen(ca), r.toScreen(cb)
	x0, y0, x1, y1, ok := clipSegment(sa.X, sa.Y, sb.X, sb.Y, float64(r.Width()-1), float64(r.Height()-1))
	if !ok {
		return
	}
	r.fb.DrawLine(int(x0), int(y0), int(x1), int(y1), color)
}

// clipSegment clips a 2D segment to [0, maxX] x [0, maxY] (Liang-Barsky).
func clipSegment(x0, y0, x1, y1, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}

	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
