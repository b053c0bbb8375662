package models

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/vantage/pkg/math3d"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if loader.Color != DefaultModelColor {
		t.Errorf("Color = %v, want %v", loader.Color, DefaultModelColor)
	}
}

// triangleDoc builds a one-triangle document whose node is translated by
// offset.
func triangleDoc(offset [3]float64) *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0), Translation: offset}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

func TestDecodeAppliesNodeTransform(t *testing.T) {
	model, err := NewGLTFLoader().Decode(triangleDoc([3]float64{10, 0, -5}))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(model.Meshes) != 1 {
		t.Fatalf("got %d meshes, want 1", len(model.Meshes))
	}
	mesh := model.Meshes[0]
	if mesh.TriangleCount() != 1 || mesh.VertexCount() != 3 {
		t.Fatalf("mesh has %d triangles and %d vertices", mesh.TriangleCount(), mesh.VertexCount())
	}

	pos, normal := mesh.GetVertex(1)
	if !pos.ApproxEqual(math3d.V3(11, 0, -5), 1e-6) {
		t.Errorf("vertex 1 = %v, want translated position", pos)
	}
	// Normals are generated when the file has none.
	if !normal.ApproxEqual(math3d.V3(0, 0, 1), 1e-6) {
		t.Errorf("normal = %v, want +Z", normal)
	}

	min, max := mesh.GetBounds()
	if !min.ApproxEqual(math3d.V3(10, 0, -5), 1e-6) || !max.ApproxEqual(math3d.V3(11, 1, -5), 1e-6) {
		t.Errorf("bounds = %v..%v", min, max)
	}
}

func TestDecodeChildInheritsParent(t *testing.T) {
	doc := triangleDoc([3]float64{})
	doc.Nodes[0].Mesh = nil
	doc.Nodes[0].Scale = [3]float64{2, 2, 2}
	doc.Nodes[0].Children = []int{1}
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "child", Mesh: gltf.Index(0), Translation: [3]float64{1, 0, 0}})

	model, err := NewGLTFLoader().Decode(doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pos, _ := model.Meshes[0].GetVertex(1)
	// (1,0,0) translated by 1 then scaled by 2.
	if !pos.ApproxEqual(math3d.V3(4, 0, 0), 1e-6) {
		t.Errorf("child vertex = %v, want (4, 0, 0)", pos)
	}
}

func TestDecodeRejectsEmptyScene(t *testing.T) {
	if _, err := NewGLTFLoader().Decode(gltf.NewDocument()); err == nil {
		t.Error("expected error for a document without geometry")
	}
}

func TestLoadGLBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(triangleDoc([3]float64{0, 2, 0}), path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	model, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	if model.Name != "tri.glb" {
		t.Errorf("Name = %q, want file name", model.Name)
	}
	if model.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", model.TriangleCount())
	}
	min, _ := model.Bounds()
	if min.Y != 2 {
		t.Errorf("min Y = %v, want 2", min.Y)
	}
}
