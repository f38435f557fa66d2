// Package preview renders a top-down image of a scene.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/Faultbox/scene3d/internal/geometry"
	"github.com/Faultbox/scene3d/internal/overlay"
	"github.com/Faultbox/scene3d/internal/scene"
)

// MaxDimension bounds the width and height of a rendered image.
const MaxDimension = 4096

// ErrTooLarge is returned when the scene does not fit in MaxDimension pixels.
var ErrTooLarge = errors.New("preview too large")

// Renderer draws scenes looking down the Y axis. World X maps to image
// columns and world Z to image rows.
type Renderer struct {
	PixelsPerMeter float64
	Padding        int

	Background color.RGBA
	Floor      color.RGBA
	Wall       color.RGBA
	Grid       color.RGBA // premultiplied, drawn over the scene
}

// NewRenderer creates a renderer with the default palette.
func NewRenderer(pixelsPerMeter float64) *Renderer {
	if pixelsPerMeter <= 0 {
		pixelsPerMeter = 32
	}
	return &Renderer{
		PixelsPerMeter: pixelsPerMeter,
		Padding:        8,
		Background:     color.RGBA{R: 24, G: 24, B: 28, A: 255},
		Floor:          color.RGBA{R: 196, G: 180, B: 150, A: 255},
		Wall:           color.RGBA{R: 60, G: 90, B: 140, A: 255},
		Grid:           color.RGBA{R: 72, G: 72, B: 72, A: 96},
	}
}

// frame maps world XZ to pixel coordinates.
type frame struct {
	minX, minZ float64
	ppm        float64
	pad        float64
}

func (f frame) px(x, z float64) (float32, float32) {
	return float32((x-f.minX)*f.ppm + f.pad), float32((z-f.minZ)*f.ppm + f.pad)
}

// Render draws floors, then walls, then the grid overlay if present.
func (r *Renderer) Render(s *scene.Scene) (*image.RGBA, error) {
	env := s.Bounds.Environment
	minX, minZ := env.Min.X, env.Min.Z
	maxX, maxZ := env.Max.X, env.Max.Z
	for _, m := range s.Meshes() {
		lo, hi := m.Min(), m.Max()
		minX, minZ = math.Min(minX, lo.X), math.Min(minZ, lo.Z)
		maxX, maxZ = math.Max(maxX, hi.X), math.Max(maxZ, hi.Z)
	}

	width := int(math.Ceil((maxX-minX)*r.PixelsPerMeter)) + 2*r.Padding
	height := int(math.Ceil((maxZ-minZ)*r.PixelsPerMeter)) + 2*r.Padding
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrTooLarge, width, height, MaxDimension)
	}
	width, height = max(width, 1), max(height, 1)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	f := frame{minX: minX, minZ: minZ, ppm: r.PixelsPerMeter, pad: float64(r.Padding)}
	raster := vector.NewRasterizer(width, height)

	for _, m := range s.Floors {
		r.fillMesh(img, raster, f, m, r.Floor)
	}
	for _, m := range s.Walls {
		r.fillMesh(img, raster, f, m, r.Wall)
	}
	for _, l := range s.Grid {
		r.strokeLine(img, raster, f, l)
	}

	return img, nil
}

// Encode renders s and writes it as PNG.
func (r *Renderer) Encode(w io.Writer, s *scene.Scene) error {
	img, err := r.Render(s)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

func (r *Renderer) fillMesh(dst *image.RGBA, raster *vector.Rasterizer, f frame, m geometry.Mesh, c color.RGBA) {
	lo, hi := m.Min(), m.Max()
	x0, y0 := f.px(lo.X, lo.Z)
	x1, y1 := f.px(hi.X, hi.Z)
	fillRect(dst, raster, x0, y0, x1, y1, c)
}

// strokeLine draws a grid line one pixel wide.
func (r *Renderer) strokeLine(dst *image.RGBA, raster *vector.Rasterizer, f frame, l overlay.Line) {
	x0, y0 := f.px(l.From.X, l.From.Z)
	x1, y1 := f.px(l.To.X, l.To.Z)
	if x0 == x1 {
		fillRect(dst, raster, x0-0.5, y0, x0+0.5, y1, r.Grid)
		return
	}
	fillRect(dst, raster, x0, y0-0.5, x1, y0+0.5, r.Grid)
}

func fillRect(dst *image.RGBA, raster *vector.Rasterizer, x0, y0, x1, y1 float32, c color.RGBA) {
	b := dst.Bounds()
	raster.Reset(b.Dx(), b.Dy())
	raster.MoveTo(x0, y0)
	raster.LineTo(x1, y0)
	raster.LineTo(x1, y1)
	raster.LineTo(x0, y1)
	raster.ClosePath()
	raster.Draw(dst, b, image.NewUniform(c), image.Point{})
}
