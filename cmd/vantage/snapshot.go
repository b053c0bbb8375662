package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/taigrr/vantage/pkg/render"
)

var (
	snapshotDir    string
	snapshotWidth  int
	snapshotHeight int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [model.glb]",
	Short: "Render every viewpoint to a PNG file",
	Long:  "Render the scene from each viewpoint of the catalog without a terminal and save the frames as PNG images.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScene(cmd, args)
		if err != nil {
			return err
		}
		paths, err := writeSnapshots(s, snapshotDir, snapshotWidth, snapshotHeight)
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return err
	},
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVarP(&snapshotDir, "out", "o", ".", "Output directory")
	f.IntVar(&snapshotWidth, "width", 320, "Image width in pixels")
	f.IntVar(&snapshotHeight, "height", 180, "Image height in pixels")
}

// writeSnapshots renders one frame per viewpoint and returns the written
// file paths.
func writeSnapshots(s *scene, dir string, width, height int) ([]string, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", width, height)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	fb := render.NewFramebuffer(width, height)
	cam := render.NewCamera()
	setupCamera(cam, s, width, height)
	r := render.NewRasterizer(cam, fb)

	var paths []string
	for i, vp := range s.catalog.All() {
		cam.SetPose(vp.Pose)
		drawScene(r, s, false)

		path := filepath.Join(dir, fmt.Sprintf("%02d-%s.png", i+1, slug(vp.Name)))
		if err := fb.SavePNG(path); err != nil {
			return paths, fmt.Errorf("save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// slug turns a viewpoint name into a file name fragment.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "viewpoint"
	}
	return out
}
