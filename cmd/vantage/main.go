// vantage - Terminal city tour
// Fly a camera between named viewpoints of a 3D city in your terminal.
//
// Controls:
//
//	Scroll      - Next/previous viewpoint (debounced)
//	N/P, J/K    - Next/previous viewpoint (also arrows, PgUp/PgDn)
//	Mouse drag  - Orbit around the look-at target
//	G           - Go to a custom pose (Tab moves, Enter flies, Esc cancels)
//	X           - Toggle wireframe mode
//	?           - Toggle HUD overlay
//	Esc/Q       - Quit
package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	catalogPath string
	citySeed    uint64
	targetFPS   int
	bgColor     string
	logPath     string
	duration    time.Duration
	debounce    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "vantage [model.glb]",
	Short: "Tour a 3D city between named camera viewpoints",
	Long: `vantage renders a city in the terminal and flies the camera between
an ordered list of viewpoints. Scroll to move through the tour, drag to
orbit, or press g to fly to any pose.

Without a model argument a procedural city is generated.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := loadScene(cmd, args)
		if err != nil {
			return err
		}
		return runViewer(cmd.Context(), scene)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&catalogPath, "catalog", "c", "", "YAML viewpoint catalog (defaults to the built-in city tour)")
	pf.Uint64Var(&citySeed, "seed", 1, "Seed for the procedural city")
	pf.StringVar(&bgColor, "bg", "30,30,40", "Background color (R,G,B)")

	f := rootCmd.Flags()
	f.IntVar(&targetFPS, "fps", 60, "Target FPS")
	f.StringVar(&logPath, "log", "", "Write diagnostics to this file")
	f.DurationVar(&duration, "duration", 0, "Transition duration (overrides the catalog)")
	f.DurationVar(&debounce, "debounce", 0, "Scroll debounce window (overrides the catalog)")

	rootCmd.AddCommand(viewpointsCmd, snapshotCmd)
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
