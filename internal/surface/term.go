package surface

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// visibleLevel is the brightness below which a faded cell renders as blank.
const visibleLevel = 0.06

type termCell struct {
	glyph   rune
	r, g, b float64 // 0..255
}

func (c termCell) level() float64 {
	return math.Max(c.r, math.Max(c.g, c.b)) / 255
}

// Term maps pixel drawing calls onto a grid of terminal cells. Each terminal
// cell covers cellPx x cellPx pixels, so a rain grid built with the same cell
// size lines up one column per terminal column.
type Term struct {
	cellPx     int
	cols, rows int
	cells      []termCell
	font       int
	fill       color.NRGBA
}

func NewTerm(cols, rows, cellPx int) *Term {
	if cellPx <= 0 {
		cellPx = 1
	}
	t := &Term{cellPx: cellPx}
	t.SetSize(cols*cellPx, rows*cellPx)
	return t
}

func (t *Term) Width() int  { return t.cols * t.cellPx }
func (t *Term) Height() int { return t.rows * t.cellPx }
func (t *Term) Cols() int   { return t.cols }
func (t *Term) Rows() int   { return t.rows }
func (t *Term) CellPx() int { return t.cellPx }

// SetSize reallocates the buffer. Like a canvas resize, content is cleared.
func (t *Term) SetSize(w, h int) {
	t.cols, t.rows = max(w/t.cellPx, 0), max(h/t.cellPx, 0)
	t.cells = make([]termCell, t.cols*t.rows)
}

// FillRect blends c over every cell whose origin lies inside the rectangle.
func (t *Term) FillRect(x, y, w, h int, c color.NRGBA) {
	a := float64(c.A) / 255
	c0, r0 := ceilDiv(x, t.cellPx), ceilDiv(y, t.cellPx)
	c1, r1 := ceilDiv(x+w, t.cellPx), ceilDiv(y+h, t.cellPx)
	for row := max(r0, 0); row < min(r1, t.rows); row++ {
		for col := max(c0, 0); col < min(c1, t.cols); col++ {
			cell := &t.cells[row*t.cols+col]
			cell.r = cell.r*(1-a) + float64(c.R)*a
			cell.g = cell.g*(1-a) + float64(c.G)*a
			cell.b = cell.b*(1-a) + float64(c.B)*a
			if cell.level() < visibleLevel {
				cell.glyph = 0
			}
		}
	}
}

func (t *Term) SetFont(px int)             { t.font = px }
func (t *Term) SetFillColor(c color.NRGBA) { t.fill = c }

// FillText writes r into the cell whose box contains the glyph body: the
// column holding x and the row directly above the baseline y.
func (t *Term) FillText(r rune, x, y float64) {
	col := int(math.Floor(x / float64(t.cellPx)))
	row := int(math.Ceil(y/float64(t.cellPx))) - 1
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return
	}
	a := float64(t.fill.A) / 255
	cell := &t.cells[row*t.cols+col]
	cell.glyph = Narrow(r)
	cell.r = cell.r*(1-a) + float64(t.fill.R)*a
	cell.g = cell.g*(1-a) + float64(t.fill.G)*a
	cell.b = cell.b*(1-a) + float64(t.fill.B)*a
}

// Cell returns the glyph at (col, row) and its brightness in [0, 1].
// Blank cells return a zero glyph.
func (t *Term) Cell(col, row int) (rune, float64) {
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return 0, 0
	}
	c := t.cells[row*t.cols+col]
	return c.glyph, c.level()
}

// Render draws the buffer as lines of text. ramp holds styles from dimmest to
// brightest; a cell uses the style matching its brightness. Runs of cells
// sharing a style are rendered together.
func (t *Term) Render(ramp []lipgloss.Style) string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < t.rows; row++ {
		cur := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur < 0 || len(ramp) == 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(ramp[cur].Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < t.cols; col++ {
			glyph, level := t.Cell(col, row)
			idx := -1
			if glyph != 0 {
				idx = bucket(level, len(ramp))
			} else {
				glyph = ' '
			}
			if idx != cur {
				flush()
				cur = idx
			}
			run.WriteRune(glyph)
		}
		flush()
		if row < t.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// String renders without styling.
func (t *Term) String() string { return t.Render(nil) }

// obsoleteKana have no halfwidth form; they render as their modern readings.
var obsoleteKana = map[rune]rune{
	'ヰ': 'イ',
	'ヱ': 'エ',
}

// Narrow maps r to a glyph that occupies exactly one terminal column.
// Full-width kana become their halfwidth forms with any voicing mark
// dropped; anything else that still isn't one column wide becomes '*'.
func Narrow(r rune) rune {
	if runewidth.RuneWidth(r) == 1 {
		return r
	}
	if m, ok := obsoleteKana[r]; ok {
		r = m
	}
	if d := []rune(norm.NFD.String(string(r))); len(d) > 0 {
		r = d[0]
	}
	if n := []rune(width.Narrow.String(string(r))); len(n) > 0 && runewidth.RuneWidth(n[0]) == 1 {
		return n[0]
	}
	return '*'
}

func bucket(level float64, n int) int {
	if n == 0 {
		return -1
	}
	i := int(level * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return -((-a) / b)
	}
	return (a + b - 1) / b
}
