package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taigrr/vantage/pkg/math3d"
	"github.com/taigrr/vantage/pkg/models"
	"github.com/taigrr/vantage/pkg/render"
	"github.com/taigrr/vantage/pkg/viewpoint"
)

// scene is everything loaded before the terminal is taken over.
type scene struct {
	model    *models.Model
	catalog  *viewpoint.Catalog
	duration time.Duration
	debounce time.Duration
	bg       render.Color
	light    math3d.Vec3
}

// loadScene resolves the model, catalog and timing from args and flags.
func loadScene(cmd *cobra.Command, args []string) (*scene, error) {
	s := &scene{
		duration: viewpoint.DefaultTransition,
		debounce: viewpoint.DefaultDebounce,
		bg:       parseColor(bgColor, render.RGB(30, 30, 40)),
		light:    math3d.V3(0.5, 1, 0.3).Normalize(),
	}

	if catalogPath != "" {
		cfg, err := viewpoint.LoadConfig(catalogPath)
		if err != nil {
			return nil, err
		}
		cat, err := cfg.Catalog()
		if err != nil {
			return nil, err
		}
		s.catalog = cat
		s.duration, s.debounce = cfg.Transition, cfg.Debounce
	} else {
		s.catalog = viewpoint.Default()
	}

	// Explicit flags win over the catalog file.
	if f := cmd.Flags().Lookup("duration"); f != nil && f.Changed {
		s.duration = duration
	}
	if f := cmd.Flags().Lookup("debounce"); f != nil && f.Changed {
		s.debounce = debounce
	}
	if s.duration < 0 || s.debounce < 0 {
		return nil, fmt.Errorf("durations must not be negative")
	}

	model, err := loadModel(args)
	if err != nil {
		return nil, err
	}
	s.model = model
	return s, nil
}

func loadModel(args []string) (*models.Model, error) {
	if len(args) == 0 {
		opts := models.DefaultCityOptions()
		opts.Seed = citySeed
		return models.GenerateCity(opts), nil
	}

	path := args[0]
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".glb", ".gltf":
		model, err := models.LoadGLB(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		model.Ground()
		return model, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}
}

// parseColor reads "R,G,B", falling back to def on malformed input.
func parseColor(s string, def render.Color) render.Color {
	var r, g, b uint8
	if n, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil || n != 3 {
		return def
	}
	return render.RGB(r, g, b)
}

// setupCamera sizes the clip range so the whole model stays visible from
// any viewpoint in the catalog.
func setupCamera(cam *render.Camera, s *scene, fbWidth, fbHeight int) {
	min, max := s.model.Bounds()
	bounds := render.NewAABB(min, max)
	reach := bounds.Size().Len()
	for _, vp := range s.catalog.All() {
		reach = math.Max(reach, vp.Pose.Position.Distance(bounds.Center())+bounds.Size().Len())
	}

	cam.SetFOV(math.Pi / 3)
	cam.SetClipPlanes(0.1, math.Max(100, reach*1.5))
	cam.SetAspectRatio(aspect(fbWidth, fbHeight))
}

func aspect(w, h int) float64 {
	if h == 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// drawScene renders every mesh of the model into the rasterizer's
// framebuffer.
func drawScene(r *render.Rasterizer, s *scene, wireframe bool) {
	r.BeginFrame(s.bg)
	for _, mesh := range s.model.Meshes {
		if wireframe {
			r.DrawMeshWireframe(mesh, render.RGB(0, 255, 128))
			continue
		}
		r.DrawMesh(mesh, mesh.Color, s.light)
	}
}
