package models

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/vantage/pkg/math3d"
)

// DefaultModelColor is used for glTF geometry.
var DefaultModelColor = color.RGBA{190, 195, 205, 255}

// GLTFLoader loads glTF/GLB scenes into a Model, one Mesh per node.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
	Color            color.RGBA
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		Color:            DefaultModelColor,
	}
}

// LoadGLB loads a .glb or .gltf file with default options.
func LoadGLB(path string) (*Model, error) {
	return NewGLTFLoader().Load(path)
}

// Load opens path and flattens its default scene into world space.
func (l *GLTFLoader) Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	model, err := l.Decode(doc)
	if err != nil {
		return nil, err
	}
	model.Name = filepath.Base(path)
	return model, nil
}

// Decode flattens an already parsed document.
func (l *GLTFLoader) Decode(doc *gltf.Document) (*Model, error) {
	model := &Model{}

	roots, err := sceneRoots(doc)
	if err != nil {
		return nil, err
	}
	for _, n := range roots {
		if err := l.visit(doc, n, math3d.Identity(), model, 0); err != nil {
			return nil, err
		}
	}

	if len(model.Meshes) == 0 {
		return nil, fmt.Errorf("gltf has no triangle geometry")
	}
	return model, nil
}

// sceneRoots returns the root nodes of the default scene, or every node
// when the document declares no scenes.
func sceneRoots(doc *gltf.Document) ([]int, error) {
	if len(doc.Scenes) == 0 {
		roots := make([]int, len(doc.Nodes))
		for i := range roots {
			roots[i] = i
		}
		return roots, nil
	}
	idx := 0
	if doc.Scene != nil {
		idx = *doc.Scene
	}
	if idx < 0 || idx >= len(doc.Scenes) {
		return nil, fmt.Errorf("default scene %d out of range", idx)
	}
	return doc.Scenes[idx].Nodes, nil
}

// maxNodeDepth guards against cyclic node graphs in malformed files.
const maxNodeDepth = 64

func (l *GLTFLoader) visit(doc *gltf.Document, idx int, parent math3d.Mat4, model *Model, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	node := doc.Nodes[idx]
	world := parent.Mul(localTransform(node))

	if node.Mesh != nil {
		mesh, err := l.readMesh(doc, *node.Mesh)
		if err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
		if mesh != nil {
			mesh.Transform(world)
			model.Meshes = append(model.Meshes, mesh)
		}
	}

	for _, child := range node.Children {
		if err := l.visit(doc, child, world, model, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// localTransform returns a node's matrix, composing T*R*S when no explicit
// matrix is set.
func localTransform(n *gltf.Node) math3d.Mat4 {
	m := math3d.Mat4(n.Matrix)
	if m != (math3d.Mat4{}) && m != math3d.Identity() {
		return m
	}

	rot := n.Rotation
	if rot == ([4]float64{}) {
		rot = [4]float64{0, 0, 0, 1}
	}
	scale := n.Scale
	if scale == ([3]float64{}) {
		scale = [3]float64{1, 1, 1}
	}
	t := n.Translation

	return math3d.Translate(math3d.V3(t[0], t[1], t[2])).
		Mul(math3d.FromQuat(rot)).
		Mul(math3d.Scale(math3d.V3(scale[0], scale[1], scale[2])))
}

// readMesh reads every triangle primitive of a glTF mesh into one Mesh.
// It returns nil when the mesh has no triangles.
func (l *GLTFLoader) readMesh(doc *gltf.Document, meshIdx int) (*Mesh, error) {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIdx)
	}
	src := doc.Meshes[meshIdx]
	mesh := NewMesh(src.Name, l.Color)
	hasNormals := true

	for _, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip lines and points
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("read normals: %w", err)
			}
		}
		if len(normals) < len(positions) {
			hasNormals = false
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
			if i < len(normals) {
				n := normals[i]
				v.Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		if prim.Indices != nil {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{
					base + int(indices[i]),
					base + int(indices[i+1]),
					base + int(indices[i+2]),
				}})
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{base + i, base + i + 1, base + i + 2}})
			}
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, nil
	}
	if l.CalculateNormals && !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}
