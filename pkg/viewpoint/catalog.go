// Package viewpoint holds the fixed, ordered set of named camera poses a
// tour cycles through.
package viewpoint

import (
	"errors"
	"fmt"

	"github.com/taigrr/vantage/pkg/math3d"
)

// ErrEmptyCatalog is returned when a catalog is built with no viewpoints.
var ErrEmptyCatalog = errors.New("viewpoint catalog is empty")

// Viewpoint is a named camera pose.
type Viewpoint struct {
	Name string
	Pose math3d.Pose
}

// Catalog is an immutable ordered list of viewpoints. Insertion order is the
// cyclic navigation order.
type Catalog struct {
	viewpoints []Viewpoint
}

// New creates a catalog from the given viewpoints. At least one is required.
func New(vps ...Viewpoint) (*Catalog, error) {
	if len(vps) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{viewpoints: make([]Viewpoint, len(vps))}
	copy(c.viewpoints, vps)
	return c, nil
}

// Len returns the number of viewpoints.
func (c *Catalog) Len() int {
	return len(c.viewpoints)
}

// Get returns the viewpoint at index i.
// It panics if i is out of range, like a slice index.
func (c *Catalog) Get(i int) Viewpoint {
	if i < 0 || i >= len(c.viewpoints) {
		panic(fmt.Sprintf("viewpoint: index %d out of range [0,%d)", i, len(c.viewpoints)))
	}
	return c.viewpoints[i]
}

// Next returns the index after i, wrapping to 0.
func (c *Catalog) Next(i int) int {
	return (i + 1) % len(c.viewpoints)
}

// Prev returns the index before i, wrapping to the last viewpoint.
func (c *Catalog) Prev(i int) int {
	n := len(c.viewpoints)
	return (i - 1 + n) % n
}

// All returns a copy of the viewpoints in order.
func (c *Catalog) All() []Viewpoint {
	out := make([]Viewpoint, len(c.viewpoints))
	copy(out, c.viewpoints)
	return out
}

// Default returns the built-in city tour. The procedural city spans roughly
// [-40, 40] on X and Z with towers up to ~30 units tall.
func Default() *Catalog {
	c, _ := New(
		Viewpoint{Name: "Skyline", Pose: math3d.NewPose(math3d.V3(0, 45, 95), math3d.V3(0, 0, 0))},
		Viewpoint{Name: "Downtown", Pose: math3d.NewPose(math3d.V3(18, 12, 22), math3d.V3(0, 8, 0))},
		Viewpoint{Name: "Harbor", Pose: math3d.NewPose(math3d.V3(-70, 10, 30), math3d.V3(-20, 4, 0))},
		Viewpoint{Name: "Bird's Eye", Pose: math3d.NewPose(math3d.V3(0.5, 110, 0.5), math3d.V3(0, 0, 0))},
		Viewpoint{Name: "Main Street", Pose: math3d.NewPose(math3d.V3(0, 2, 45), math3d.V3(0, 3, -10))},
		Viewpoint{Name: "Old Town", Pose: math3d.NewPose(math3d.V3(55, 25, -55), math3d.V3(10, 0, -10))},
	)
	return c
}
