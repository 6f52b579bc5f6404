// Package label builds the extruded 3D title shown at the scene origin.
//
// Text is rasterized with a font face and turned into a point cloud: a filled
// front and back face, bevel rings, and side walls along the glyph outlines.
// Points are colored by surface normal and centred on the origin before being
// lifted by OffsetY.
package label

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	"github.com/san-kum/galaxy/internal/galaxy"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrEmpty indicates text that rasterizes to no pixels.
var ErrEmpty = errors.New("label: text has no visible glyphs")

type Options struct {
	Text           string
	Font           string // TTF/OTF path; empty selects the built-in bitmap face
	Size           float64
	Height         float64
	BevelThickness float64
	BevelSize      float64
	OffsetY        float64
	PixelSize      float64 // rasterization size for outline fonts
}

func DefaultOptions() Options {
	return Options{
		Text:           "Star Wars",
		Size:           0.5,
		Height:         0.2,
		BevelThickness: 0.03,
		BevelSize:      0.02,
		OffsetY:        0.5,
		PixelSize:      32,
	}
}

// LoadFace opens the font at path, or the built-in 7x13 face when path is empty.
func LoadFace(path string, px float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("label: read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("label: parse font %s: %w", path, err)
	}
	if px <= 0 {
		px = DefaultOptions().PixelSize
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingNone})
}

type mask struct {
	w, h int
	on   []bool
}

func (m *mask) at(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.on[y*m.w+x]
}

// edge reports whether a filled pixel touches empty space, with the outward
// direction in label space (y up).
func (m *mask) edge(x, y int) (bool, float64, float64) {
	var nx, ny float64
	if !m.at(x-1, y) {
		nx--
	}
	if !m.at(x+1, y) {
		nx++
	}
	if !m.at(x, y-1) {
		ny++
	}
	if !m.at(x, y+1) {
		ny--
	}
	isEdge := !m.at(x-1, y) || !m.at(x+1, y) || !m.at(x, y-1) || !m.at(x, y+1)
	if l := math.Hypot(nx, ny); l > 0 {
		nx, ny = nx/l, ny/l
	}
	return isEdge, nx, ny
}

func rasterize(face font.Face, text string) (*mask, error) {
	metrics := face.Metrics()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	w, h := font.MeasureString(face, text).Ceil(), ascent+descent
	if w <= 0 || h <= 0 {
		return nil, ErrEmpty
	}
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{Dst: img, Src: image.Opaque, Face: face, Dot: fixed.P(0, ascent)}
	d.DrawString(text)

	m := &mask{w: w, h: h, on: make([]bool, w*h)}
	filled := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.AlphaAt(x, y).A >= 128 {
				m.on[y*w+x] = true
				filled++
			}
		}
	}
	if filled == 0 {
		return nil, ErrEmpty
	}
	return m, nil
}

type builder struct {
	pos, col []float32
}

func (b *builder) add(x, y, z, nx, ny, nz float64) {
	if l := math.Sqrt(nx*nx + ny*ny + nz*nz); l > 0 {
		nx, ny, nz = nx/l, ny/l, nz/l
	}
	b.pos = append(b.pos, float32(x), float32(y), float32(z))
	b.col = append(b.col, float32(nx*0.5+0.5), float32(ny*0.5+0.5), float32(nz*0.5+0.5))
}

// Geometry is the label point cloud. PointSize is the world-space spacing of
// the raster, the natural point size for drawing it.
type Geometry struct {
	*galaxy.Buffer
	PointSize float64
}

// Build rasterizes opts.Text into a normal-colored point buffer.
func Build(opts Options) (*Geometry, error) {
	face, err := LoadFace(opts.Font, opts.PixelSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	m, err := rasterize(face, opts.Text)
	if err != nil {
		return nil, err
	}

	unit := opts.Size / float64(m.h)
	half := opts.Height / 2
	front := half + opts.BevelThickness
	layers := int(math.Ceil(opts.Height / unit))
	if layers < 2 {
		layers = 2
	}

	b := &builder{}
	for py := 0; py < m.h; py++ {
		for px := 0; px < m.w; px++ {
			if !m.at(px, py) {
				continue
			}
			x := (float64(px) + 0.5) * unit
			y := (float64(m.h-py) - 0.5) * unit

			b.add(x, y, front, 0, 0, 1)
			b.add(x, y, -front, 0, 0, -1)

			isEdge, nx, ny := m.edge(px, py)
			if !isEdge {
				continue
			}
			bx, by := x+nx*opts.BevelSize/2, y+ny*opts.BevelSize/2
			b.add(bx, by, half+opts.BevelThickness/2, nx, ny, 1)
			b.add(bx, by, -half-opts.BevelThickness/2, nx, ny, -1)

			sx, sy := x+nx*opts.BevelSize, y+ny*opts.BevelSize
			for l := 0; l <= layers; l++ {
				z := -half + opts.Height*float64(l)/float64(layers)
				b.add(sx, sy, z, nx, ny, 0)
			}
		}
	}

	center(b.pos, opts.OffsetY)
	return &Geometry{
		Buffer:    &galaxy.Buffer{Count: len(b.pos) / 3, Positions: b.pos, Colors: b.col},
		PointSize: unit,
	}, nil
}

// center moves the bounding box centre to (0, offsetY, 0).
func center(pos []float32, offsetY float64) {
	lo := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for i := 0; i < len(pos); i += 3 {
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], pos[i+a])
			hi[a] = max(hi[a], pos[i+a])
		}
	}
	var shift [3]float32
	for a := 0; a < 3; a++ {
		shift[a] = (lo[a] + hi[a]) / 2
	}
	shift[1] -= float32(offsetY)
	for i := 0; i < len(pos); i += 3 {
		pos[i] -= shift[0]
		pos[i+1] -= shift[1]
		pos[i+2] -= shift[2]
	}
}

// Result carries an asynchronously built label.
type Result struct {
	Geometry *Geometry
	Err      error
}

// LoadAsync builds the label on a separate goroutine. The channel receives
// exactly one Result and is then closed.
func LoadAsync(opts Options) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		g, err := Build(opts)
		ch <- Result{Geometry: g, Err: err}
	}()
	return ch
}
