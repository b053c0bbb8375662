// Package hud draws the status overlay and the custom pose form on top of
// the rendered city.
package hud

import (
	"fmt"
	"strings"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/vantage/pkg/math3d"
	"github.com/taigrr/vantage/pkg/tour"
)

// ANSI styling for overlay text. uv.StyledString turns these into cell
// styles.
const (
	reset    = "\x1b[0m"
	bold     = "\x1b[1m"
	dim      = "\x1b[2m"
	reverse  = "\x1b[7m"
	bgBlack  = "\x1b[40m"
	fgWhite  = "\x1b[97m"
	fgGreen  = "\x1b[92m"
	fgYellow = "\x1b[93m"
	fgCyan   = "\x1b[96m"
)

// HUD renders an overlay with the current viewpoint, live pose and frame
// rate. It learns about the engine only through status notifications.
type HUD struct {
	model     string
	triangles int

	status   tour.Status
	progress float64
	visible  bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// New creates a visible HUD for a model.
func New(model string, triangles int) *HUD {
	return &HUD{
		model:     model,
		triangles: triangles,
		visible:   true,
	}
}

// Update records a status notification. It is meant to be passed to
// tour.Engine.Subscribe.
func (h *HUD) Update(s tour.Status) {
	h.status = s
}

// Status returns the last status received.
func (h *HUD) Status() tour.Status {
	return h.status
}

// SetProgress sets the transition progress shown while moving.
func (h *HUD) SetProgress(p float64) {
	h.progress = p
}

// Toggle shows or hides the overlay.
func (h *HUD) Toggle() {
	h.visible = !h.visible
}

// Visible reports whether the overlay is drawn.
func (h *HUD) Visible() bool {
	return h.visible
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS(now time.Time) {
	if h.fpsTime.IsZero() {
		h.fpsTime = now
	}
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 {
	return h.fps
}

// Title returns "n/N name" for the current viewpoint.
func (h *HUD) Title() string {
	return fmt.Sprintf("%d/%d %s", h.status.Ordinal(), h.status.Total, h.status.Name)
}

// PoseLine returns the live pose at display precision.
func (h *HUD) PoseLine() string {
	return "pos " + formatVec(h.status.Pose.Position) + "  look " + formatVec(h.status.Pose.LookAt)
}

func formatVec(v math3d.Vec3) string {
	p := tour.DisplayPrecision
	return fmt.Sprintf("(%.*f, %.*f, %.*f)", p, v.X, p, v.Y, p, v.Z)
}

// Draw paints the top and bottom overlay rows inside area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle) {
	if !h.visible || area.Dx() <= 0 || area.Dy() <= 0 {
		return
	}
	width := area.Dx()
	right := area.Max.X
	top := area.Min.Y
	bottom := area.Max.Y - 1

	// Top left: FPS
	fps := fmt.Sprintf(" %.0f FPS ", h.fps)
	drawText(scr, area.Min.X, top, right, bgBlack+fgGreen+fps+reset)

	// Top middle: viewpoint
	title := " " + h.Title() + " "
	drawText(scr, area.Min.X+max((width-len(title))/2, 0), top, right,
		bold+bgBlack+fgWhite+title+reset)

	// Top right: polygon count and model
	info := fmt.Sprintf(" %s %d polys ", h.model, h.triangles)
	drawText(scr, area.Min.X+max(width-len(info), 0), top, right,
		bgBlack+fgCyan+info+reset)

	// Bottom: live pose and transition state
	line := bgBlack + fgWhite + " " + h.PoseLine() + " " + reset
	if h.status.State == tour.Transitioning {
		line += bgBlack + fgYellow + " " + progressBar(h.progress, 12) + reset
	} else {
		line += bgBlack + dim + fgYellow + " n/p scroll  drag orbit  g goto  x wire  ? hud " + reset
	}
	drawText(scr, area.Min.X, bottom, right, line)
}

// progressBar renders p in [0, 1] as a fixed width bar.
func progressBar(p float64, width int) string {
	p = min(max(p, 0), 1)
	filled := int(p * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) +
		fmt.Sprintf("] %3.0f%% ", p*100)
}

// drawText draws one line of ANSI-styled text starting at (x, y),
// truncated at column right.
func drawText(scr uv.Screen, x, y, right int, s string) {
	ss := uv.NewStyledString(s)
	w := ss.UnicodeWidth()
	if x+w > right {
		w = max(right-x, 0)
	}
	if w == 0 {
		return
	}
	ss.Draw(scr, uv.Rect(x, y, w, 1))
}
