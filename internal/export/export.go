// Package export writes rendered rain frames as PNG, animated GIF or SVG.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/san-kum/glyphfall/internal/rain"
	"github.com/san-kum/glyphfall/internal/surface"
)

type Format string

const (
	PNG Format = "png"
	GIF Format = "gif"
	SVG Format = "svg"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")); f {
	case PNG, GIF, SVG:
		return f, nil
	default:
		return "", fmt.Errorf("export: unsupported format %q", filepath.Ext(path))
	}
}

// Palette is a ramp of n shades from black to c.
func Palette(c color.NRGBA, n int) color.Palette {
	if n < 2 {
		n = 2
	}
	p := make(color.Palette, n)
	for i := range p {
		k := float64(i) / float64(n-1)
		p[i] = color.NRGBA{
			R: uint8(float64(c.R)*k + 0.5),
			G: uint8(float64(c.G)*k + 0.5),
			B: uint8(float64(c.B)*k + 0.5),
			A: 0xff,
		}
	}
	return p
}

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Recorder captures raster frames for an animated GIF. It observes a driver
// painting onto r.
type Recorder struct {
	mu        sync.Mutex
	raster    *surface.Raster
	palette   color.Palette
	every     int
	maxFrames int
	seen      int
	anim      gif.GIF
}

// NewRecorder keeps every n-th painted frame, at most maxFrames of them
// (0 for no limit).
func NewRecorder(r *surface.Raster, p color.Palette, every, maxFrames int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{raster: r, palette: p, every: every, maxFrames: maxFrames}
}

func (rec *Recorder) OnFrame(f rain.Frame) {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.seen++
	if (rec.seen-1)%rec.every != 0 {
		return
	}
	if rec.maxFrames > 0 && len(rec.anim.Image) >= rec.maxFrames {
		return
	}

	src := rec.raster.Image()
	img := image.NewPaletted(src.Bounds(), rec.palette)
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)

	delay := int(f.Interval*float64(rec.every)/10 + 0.5)
	if delay < 2 {
		delay = 2
	}
	rec.anim.Image = append(rec.anim.Image, img)
	rec.anim.Delay = append(rec.anim.Delay, delay)
}

func (rec *Recorder) Len() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.anim.Image)
}

func (rec *Recorder) Encode(w io.Writer) error {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.anim.Image) == 0 {
		return fmt.Errorf("export: no frames recorded")
	}
	return gif.EncodeAll(w, &rec.anim)
}
