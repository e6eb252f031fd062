// Package preview draws a track as a polyline image.
//
// Each tile moves one unit along its angle (0° = +x, counter-clockwise,
// screen y pointing down); mid-spin tiles do not move. The walk is scaled
// to fit the canvas and every step is rasterized as a thick segment with
// golang.org/x/image/vector. The first tile gets its own marker.
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
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	"github.com/katalvlaran/floormesh/pathcodec"
)

var (
	// ErrEmptyTrack indicates there is nothing to draw.
	ErrEmptyTrack = errors.New("preview: track has no tiles")
	// ErrUnknownFormat indicates an image format other than png or webp.
	ErrUnknownFormat = errors.New("preview: unknown image format")
	// ErrBadSize indicates a canvas too small for its margin.
	ErrBadSize = errors.New("preview: size must exceed twice the margin")
)

// Options controls rendering.
//   - Size       — square canvas edge in pixels
//   - Margin     — empty border in pixels
//   - Stroke     — segment thickness in pixels
//   - Background, Track, Start — fill colors
type Options struct {
	Size       int
	Margin     int
	Stroke     float64
	Background color.Color
	Track      color.Color
	Start      color.Color
}

// DefaultOptions returns a 512 px canvas with a dark background.
func DefaultOptions() Options {
	return Options{
		Size:       512,
		Margin:     24,
		Stroke:     4,
		Background: colornames.Midnightblue,
		Track:      colornames.Gold,
		Start:      colornames.Tomato,
	}
}

// Point is a tile position in track units.
type Point struct{ X, Y float64 }

// Walk returns the tile positions of a track: len(angles)+1 points,
// starting at the origin.
func Walk(angles []float64) []Point {
	pts := make([]Point, 1, len(angles)+1)
	cur := Point{}
	for _, a := range angles {
		if !pathcodec.IsMidSpin(a) {
			rad := a * math.Pi / 180
			cur = Point{cur.X + math.Cos(rad), cur.Y - math.Sin(rad)}
		}
		pts = append(pts, cur)
	}
	return pts
}

// Render rasterizes angles onto a new RGBA canvas.
func Render(angles []float64, opts Options) (*image.RGBA, error) {
	if len(angles) == 0 {
		return nil, ErrEmptyTrack
	}
	if opts.Size <= 2*opts.Margin {
		return nil, ErrBadSize
	}

	pts := Walk(angles)
	minX, minY, maxX, maxY := bounds(pts)
	span := math.Max(maxX-minX, maxY-minY)
	inner := float64(opts.Size - 2*opts.Margin)
	scale := inner
	if span > 0 {
		scale = inner / span
	}
	// centre the drawing inside the margin box
	offX := float64(opts.Margin) + (inner-(maxX-minX)*scale)/2
	offY := float64(opts.Margin) + (inner-(maxY-minY)*scale)/2
	project := func(p Point) Point {
		return Point{offX + (p.X-minX)*scale, offY + (p.Y-minY)*scale}
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	r := vector.NewRasterizer(opts.Size, opts.Size)
	for i := 1; i < len(pts); i++ {
		a, b := project(pts[i-1]), project(pts[i])
		segment(r, a, b, opts.Stroke)
	}
	r.Draw(img, img.Bounds(), image.NewUniform(opts.Track), image.Point{})

	r.Reset(opts.Size, opts.Size)
	square(r, project(pts[0]), opts.Stroke*1.5)
	r.Draw(img, img.Bounds(), image.NewUniform(opts.Start), image.Point{})

	return img, nil
}

// Encode writes img as "png" or "webp".
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Write encodes img to path, choosing the format from the extension.
func Write(path string, img image.Image) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format != "png" && format != "webp" {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("preview: write %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: write %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("preview: write %s: %w", path, err)
	}
	return nil
}

func bounds(pts []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// segment adds a quad of the given width from a to b.
func segment(r *vector.Rasterizer, a, b Point, width float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	r.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	r.LineTo(float32(b.X+nx), float32(b.Y+ny))
	r.LineTo(float32(b.X-nx), float32(b.Y-ny))
	r.LineTo(float32(a.X-nx), float32(a.Y-ny))
	r.ClosePath()
}

// square adds an axis-aligned square of edge 2·half centred on c.
func square(r *vector.Rasterizer, c Point, half float64) {
	r.MoveTo(float32(c.X-half), float32(c.Y-half))
	r.LineTo(float32(c.X+half), float32(c.Y-half))
	r.LineTo(float32(c.X+half), float32(c.Y+half))
	r.LineTo(float32(c.X-half), float32(c.Y+half))
	r.ClosePath()
}
