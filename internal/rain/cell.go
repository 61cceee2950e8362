package rain

const (
	DefaultCellSize    = 16
	DefaultStep        = 0.9
	DefaultResetChance = 0.03
	initialGlyph       = 'A'
)

// Params controls cell geometry and motion.
type Params struct {
	CellSize    int
	Step        float64 // grid units advanced per rendered frame
	ResetChance float64 // probability of a reset once past the bottom edge
	Alphabet    Alphabet
}

func DefaultParams() Params {
	return Params{
		CellSize:    DefaultCellSize,
		Step:        DefaultStep,
		ResetChance: DefaultResetChance,
		Alphabet:    Katakana,
	}
}

// Cell is a single falling column.
type Cell struct {
	Column int
	Y      float64
	Glyph  rune
}

func newCell(col int) Cell {
	return Cell{Column: col, Glyph: initialGlyph}
}

// Render draws a freshly picked glyph at the cell position, then moves the
// cell down. Once the cell is past height it returns to the top only with
// probability ResetChance per frame, so columns wrap at staggered times.
// It reports whether the cell was reset.
func (c *Cell) Render(s Surface, p Params, height int, src Source) bool {
	c.Glyph = p.Alphabet.Pick(src)
	size := float64(p.CellSize)
	s.FillText(c.Glyph, float64(c.Column)*size, c.Y*size)

	if c.Y*size > float64(height) && src.Float64() > 1-p.ResetChance {
		c.Y = 0
		return true
	}
	c.Y += p.Step
	return false
}
