// Package models provides the city geometry vantage renders.
package models

import (
	"image/color"

	"github.com/taigrr/vantage/pkg/math3d"
)

// Mesh is a triangle mesh drawn in a single color.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face
	Color    color.RGBA

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face is a triangle given by indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string, c color.RGBA) *Mesh {
	return &Mesh{
		Name:  name,
		Color: c,
	}
}

// AddTriangle appends a flat-shaded triangle with its own vertices.
func (m *Mesh) AddTriangle(a, b, c math3d.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices,
		MeshVertex{Position: a, Normal: n},
		MeshVertex{Position: b, Normal: n},
		MeshVertex{Position: c, Normal: n},
	)
	m.Faces = append(m.Faces, Face{V: [3]int{base, base + 1, base + 2}})
}

// AddQuad appends two triangles a-b-c and a-c-d.
func (m *Mesh) AddQuad(a, b, c, d math3d.Vec3) {
	m.AddTriangle(a, b, c)
	m.AddTriangle(a, c, d)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// CalculateSmoothNormals computes area-weighted vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet
		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetVertex returns the position and normal for vertex i.
// Implements render.MeshRenderer.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3) {
	v := m.Vertices[i]
	return v.Position, v.Normal
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetBounds returns the axis-aligned bounding box.
// Implements render.BoundedMeshRenderer.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// Model is a scene made of independently culled meshes.
type Model struct {
	Name   string
	Meshes []*Mesh
}

// Bounds returns the bounding box of every mesh in the model.
func (m *Model) Bounds() (min, max math3d.Vec3) {
	first := true
	for _, mesh := range m.Meshes {
		if len(mesh.Vertices) == 0 {
			continue
		}
		if first {
			min, max = mesh.BoundsMin, mesh.BoundsMax
			first = false
			continue
		}
		min = min.Min(mesh.BoundsMin)
		max = max.Max(mesh.BoundsMax)
	}
	return min, max
}

// TriangleCount returns the number of triangles across all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.TriangleCount()
	}
	return n
}

// Transform applies mat to every mesh.
func (m *Model) Transform(mat math3d.Mat4) {
	for _, mesh := range m.Meshes {
		mesh.Transform(mat)
	}
}

// Ground moves the model so its footprint is centered on the origin and
// its lowest point rests on y=0. Scale is preserved so configured
// viewpoints stay in model units.
func (m *Model) Ground() {
	min, max := m.Bounds()
	center := min.Add(max).Scale(0.5)
	m.Transform(math3d.Translate(math3d.V3(-center.X, -min.Y, -center.Z)))
}
