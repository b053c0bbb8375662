package models

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/taigrr/vantage/pkg/math3d"
)

// CityOptions controls the procedural city.
type CityOptions struct {
	Grid      int     // lots per side
	LotSize   float64 // footprint of one lot
	Street    float64 // street width between lots
	MaxHeight float64 // tallest tower
	Seed      uint64
}

// DefaultCityOptions returns the layout the built-in viewpoints were
// framed against.
func DefaultCityOptions() CityOptions {
	return CityOptions{
		Grid:      8,
		LotSize:   7,
		Street:    3,
		MaxHeight: 30,
		Seed:      1,
	}
}

var (
	groundColor = color.RGBA{46, 52, 58, 255}
	towerColors = []color.RGBA{
		{120, 130, 150, 255},
		{150, 160, 175, 255},
		{185, 175, 150, 255},
		{200, 205, 215, 255},
	}
)

// GenerateCity builds a deterministic grid of box buildings on a ground
// slab. The city is centered on the origin with its ground at y=0. Towers
// cluster toward the center.
func GenerateCity(opts CityOptions) *Model {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	pitch := opts.LotSize + opts.Street
	half := float64(opts.Grid) * pitch / 2

	model := &Model{Name: "city"}

	ground := NewMesh("ground", groundColor)
	g := half + opts.Street
	ground.AddQuad(
		math3d.V3(-g, 0, g), math3d.V3(g, 0, g),
		math3d.V3(g, 0, -g), math3d.V3(-g, 0, -g),
	)
	ground.CalculateBounds()
	model.Meshes = append(model.Meshes, ground)

	for row := range opts.Grid {
		for col := range opts.Grid {
			// Leave some lots open as plazas.
			if rng.Float64() < 0.12 {
				continue
			}

			x0 := -half + float64(col)*pitch + opts.Street/2
			z0 := -half + float64(row)*pitch + opts.Street/2

			// Distance from center in [0, 1] biases height toward downtown.
			cx := x0 + opts.LotSize/2
			cz := z0 + opts.LotSize/2
			d := math.Min(1, math.Hypot(cx, cz)/half)
			h := opts.MaxHeight * (0.15 + 0.85*(1-d)*rng.Float64())

			// Inset each building a little so neighbors never share walls.
			inset := opts.LotSize * 0.1 * rng.Float64()
			min := math3d.V3(x0+inset, 0, z0+inset)
			max := math3d.V3(x0+opts.LotSize-inset, h, z0+opts.LotSize-inset)

			c := towerColors[rng.IntN(len(towerColors))]
			b := NewMesh(fmt.Sprintf("block-%d-%d", row, col), c)
			AddBox(b, min, max)
			b.CalculateBounds()
			model.Meshes = append(model.Meshes, b)
		}
	}

	return model
}

// AddBox appends the four walls and roof of an axis-aligned box. The floor
// is omitted. Faces wind counter-clockwise seen from outside.
func AddBox(m *Mesh, min, max math3d.Vec3) {
	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z

	// roof
	m.AddQuad(math3d.V3(x0, y1, z1), math3d.V3(x1, y1, z1), math3d.V3(x1, y1, z0), math3d.V3(x0, y1, z0))
	// +Z
	m.AddQuad(math3d.V3(x0, y0, z1), math3d.V3(x1, y0, z1), math3d.V3(x1, y1, z1), math3d.V3(x0, y1, z1))
	// -Z
	m.AddQuad(math3d.V3(x1, y0, z0), math3d.V3(x0, y0, z0), math3d.V3(x0, y1, z0), math3d.V3(x1, y1, z0))
	// +X
	m.AddQuad(math3d.V3(x1, y0, z1), math3d.V3(x1, y0, z0), math3d.V3(x1, y1, z0), math3d.V3(x1, y1, z1))
	// -X
	m.AddQuad(math3d.V3(x0, y0, z0), math3d.V3(x0, y0, z1), math3d.V3(x0, y1, z1), math3d.V3(x0, y1, z0))
}
