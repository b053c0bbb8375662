// Package render draws the city into a half-block terminal framebuffer.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Framebuffer holds one frame of pixels. Two pixels stack into each
// terminal cell, so Height is twice the number of rows drawn.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color // row-major
}

// NewFramebuffer allocates a width x height framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Bounds is the drawable area in pixels.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// Clear fills every pixel with c.
func (fb *Framebuffer) Clear(c Color) {
	if len(fb.Pixels) == 0 {
		return
	}
	fb.Pixels[0] = c
	for n := 1; n < len(fb.Pixels); n *= 2 {
		copy(fb.Pixels[n:], fb.Pixels[:n])
	}
}

// SetPixel writes c at (x, y). Out of range writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the pixel at (x, y), or the zero color out of range.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine plots a Bresenham line. Both ends are expected to be near the
// screen; the rasterizer clips 3D lines before calling it.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y1-y0, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}
	dy = -dy

	e := dx + dy
	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// FillRect paints r, clipped to the framebuffer.
func (fb *Framebuffer) FillRect(r image.Rectangle, c Color) {
	r = r.Intersect(fb.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = c
		}
	}
}

// StrokeRect paints the one pixel border of r.
func (fb *Framebuffer) StrokeRect(r image.Rectangle, c Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	fb.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fb.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fb.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fb.FillRect(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// Marker draws a square reticle of the given radius around (x, y) with a
// dot in the middle.
func (fb *Framebuffer) Marker(x, y, radius int, c Color) {
	fb.StrokeRect(image.Rect(x-radius, y-radius, x+radius+1, y+radius+1), c)
	fb.SetPixel(x, y, c)
}

// ToImage copies the framebuffer into an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for i, p := range fb.Pixels {
		img.Pix[i*4+0] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = p.A
	}
	return img
}

// SavePNG encodes the framebuffer to path.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
