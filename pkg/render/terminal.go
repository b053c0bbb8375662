package render

import (
	"image/color"
	"math"

	uv "github.com/charmbracelet/ultraviolet"
)

// Display is a cell screen that can flush itself to the terminal.
// *uv.Terminal satisfies it.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalRenderer draws framebuffers onto a terminal screen using
// half-block cells.
type TerminalRenderer struct {
	screen Display
	width  int // terminal columns
	height int // terminal rows
}

// NewTerminalRenderer creates a renderer for a width x height cell screen.
func NewTerminalRenderer(screen Display, width, height int) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		width:  width,
		height: height,
	}
}

// FramebufferSize returns the pixel size that fills the screen: one column
// per pixel and two pixels per row.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

// Screen returns the underlying screen for overlays.
func (t *TerminalRenderer) Screen() uv.Screen {
	return t.screen
}

// Render draws fb onto the screen.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.screen, uv.Rect(0, 0, t.width, t.height))
}

// Flush writes pending cell changes to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.screen.Display()
}

// Draw converts the internal framebuffer to terminal cells and draws them on
// the screen.
// The framebuffer height should be 2x the terminal height.
func (r *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < r.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(r.GetPixel(col, topY)),
					Bg: rgbaToColor(r.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

// MultiplyColor multiplies a color by a scalar (for lighting).
func MultiplyColor(c Color, intensity float64) Color {
	return Color{
		R: uint8(math.Min(255, float64(c.R)*intensity)),
		G: uint8(math.Min(255, float64(c.G)*intensity)),
		B: uint8(math.Min(255, float64(c.B)*intensity)),
		A: c.A,
	}
}
