package rain_test

import (
	"fmt"
	"image/color"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphfall/internal/rain"
)

func TestRain(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rain Suite")
}

type op struct {
	kind  string
	glyph rune
	x, y  float64
	w, h  int
	color color.NRGBA
	font  int
}

func (o op) String() string {
	return fmt.Sprintf("%s(%q %.1f,%.1f %dx%d)", o.kind, o.glyph, o.x, o.y, o.w, o.h)
}

// recordingSurface remembers every drawing call instead of rasterizing.
type recordingSurface struct {
	w, h int
	ops  []op
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) Width() int       { return s.w }
func (s *recordingSurface) Height() int      { return s.h }
func (s *recordingSurface) SetSize(w, h int) { s.w, s.h = w, h }

func (s *recordingSurface) FillRect(x, y, w, h int, c color.NRGBA) {
	s.ops = append(s.ops, op{kind: "rect", x: float64(x), y: float64(y), w: w, h: h, color: c})
}

func (s *recordingSurface) SetFont(px int) {
	s.ops = append(s.ops, op{kind: "font", font: px})
}

func (s *recordingSurface) SetFillColor(c color.NRGBA) {
	s.ops = append(s.ops, op{kind: "fill", color: c})
}

func (s *recordingSurface) FillText(r rune, x, y float64) {
	s.ops = append(s.ops, op{kind: "text", glyph: r, x: x, y: y})
}

func (s *recordingSurface) count(kind string) int {
	n := 0
	for _, o := range s.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

// fixedSource returns the same values on every call.
type fixedSource struct {
	n int
	f float64
}

func (s fixedSource) Intn(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func (s fixedSource) Float64() float64 { return s.f }

// captureScheduler hands callbacks back to the test instead of firing them.
type captureScheduler struct {
	fns []rain.FrameFunc
}

func (s *captureScheduler) RequestFrame(fn rain.FrameFunc) rain.FrameID {
	s.fns = append(s.fns, fn)
	return rain.FrameID(len(s.fns))
}

func (s *captureScheduler) CancelFrame(rain.FrameID) {}
