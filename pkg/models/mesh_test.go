package models

import (
	"image/color"
	"testing"

	"github.com/taigrr/vantage/pkg/math3d"
)

func TestAddQuad(t *testing.T) {
	m := NewMesh("q", color.RGBA{255, 0, 0, 255})
	m.AddQuad(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(1, 1, 0), math3d.V3(0, 1, 0))

	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", m.TriangleCount())
	}
	if m.VertexCount() != 6 {
		t.Errorf("VertexCount = %d, want 6", m.VertexCount())
	}
	for i := range m.VertexCount() {
		if _, n := m.GetVertex(i); !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
			t.Errorf("vertex %d normal = %v, want +Z", i, n)
		}
	}
}

func TestCalculateSmoothNormals(t *testing.T) {
	m := NewMesh("shared", color.RGBA{})
	m.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
		{Position: math3d.V3(0, 0, -1)},
	}
	// One face facing +Z, one facing +Y, sharing the 0-1 edge.
	m.Faces = []Face{{V: [3]int{0, 1, 2}}, {V: [3]int{0, 3, 1}}}
	m.CalculateSmoothNormals()

	_, n := m.GetVertex(0)
	want := math3d.V3(0, 1, 1).Normalize()
	if !n.ApproxEqual(want, 1e-9) {
		t.Errorf("shared normal = %v, want %v", n, want)
	}
	if _, n := m.GetVertex(2); !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
		t.Errorf("unshared normal = %v, want +Z", n)
	}
}

func TestModelGround(t *testing.T) {
	m := NewMesh("box", color.RGBA{})
	AddBox(m, math3d.V3(10, -3, 4), math3d.V3(14, 5, 8))
	m.CalculateBounds()
	model := &Model{Meshes: []*Mesh{m}}

	model.Ground()

	min, max := model.Bounds()
	if !min.ApproxEqual(math3d.V3(-2, 0, -2), 1e-9) || !max.ApproxEqual(math3d.V3(2, 8, 2), 1e-9) {
		t.Errorf("grounded bounds = %v..%v", min, max)
	}
}

func TestModelBoundsSkipsEmptyMeshes(t *testing.T) {
	empty := NewMesh("empty", color.RGBA{})
	box := NewMesh("box", color.RGBA{})
	AddBox(box, math3d.V3(1, 1, 1), math3d.V3(2, 2, 2))
	box.CalculateBounds()

	model := &Model{Meshes: []*Mesh{empty, box}}
	min, max := model.Bounds()
	if min != math3d.V3(1, 1, 1) || max != math3d.V3(2, 2, 2) {
		t.Errorf("bounds = %v..%v, want box only", min, max)
	}
}
