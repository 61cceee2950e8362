package surface

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

type svgOp struct {
	text       bool
	glyph      rune
	x, y, w, h int
	c          color.NRGBA
	font       int
}

// SVG records drawing calls and writes them as an SVG document, so the fade
// overlays stack the same way they do on a canvas.
type SVG struct {
	w, h int
	font int
	fill color.NRGBA
	ops  []svgOp
}

func NewSVG(w, h int) *SVG {
	return &SVG{w: w, h: h, font: 16}
}

func (s *SVG) Width() int  { return s.w }
func (s *SVG) Height() int { return s.h }

// SetSize changes the document size and drops everything recorded so far.
func (s *SVG) SetSize(w, h int) {
	s.w, s.h = w, h
	s.ops = s.ops[:0]
}

func (s *SVG) FillRect(x, y, w, h int, c color.NRGBA) {
	s.ops = append(s.ops, svgOp{x: x, y: y, w: w, h: h, c: c})
}

func (s *SVG) SetFont(px int)             { s.font = px }
func (s *SVG) SetFillColor(c color.NRGBA) { s.fill = c }

func (s *SVG) FillText(r rune, x, y float64) {
	s.ops = append(s.ops, svgOp{
		text:  true,
		glyph: r,
		x:     int(math.Round(x)),
		y:     int(math.Round(y)),
		c:     s.fill,
		font:  s.font,
	})
}

// Ops is the number of recorded drawing calls.
func (s *SVG) Ops() int { return len(s.ops) }

// Reset drops recorded calls, keeping the size.
func (s *SVG) Reset() { s.ops = s.ops[:0] }

// Encode writes the recorded frame history on a black background.
func (s *SVG) Encode(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.w, s.h)
	canvas.Rect(0, 0, s.w, s.h, "fill:black")
	for _, op := range s.ops {
		if op.text {
			canvas.Text(op.x, op.y, string(op.glyph), fmt.Sprintf(
				"text-anchor:middle;font-family:monospace;font-size:%dpx;%s", op.font, fillStyle(op.c)))
			continue
		}
		canvas.Rect(op.x, op.y, op.w, op.h, fillStyle(op.c))
	}
	canvas.End()
	return ew.err
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func fillStyle(c color.NRGBA) string {
	return fmt.Sprintf("fill:#%02x%02x%02x;fill-opacity:%.3f", c.R, c.G, c.B, float64(c.A)/255)
}
