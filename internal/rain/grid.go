package rain

// Grid holds one cell per column of the surface.
type Grid struct {
	params        Params
	src           Source
	width, height int
	cells         []Cell
}

// NewGrid validates p and builds the initial cells for a width x height surface.
func NewGrid(width, height int, p Params, src Source) (*Grid, error) {
	if p.CellSize <= 0 {
		return nil, ErrInvalidCellSize
	}
	if len(p.Alphabet) == 0 {
		return nil, ErrEmptyAlphabet
	}
	g := &Grid{params: p, src: src}
	g.Build(width, height, p.CellSize)
	return g, nil
}

// Build discards every cell and creates floor(width/cellSize) new ones at the
// top of the surface. A non-positive cellSize keeps the current one.
func (g *Grid) Build(width, height, cellSize int) {
	if cellSize > 0 {
		g.params.CellSize = cellSize
	}
	g.width, g.height = width, height

	n := 0
	if width > 0 {
		n = width / g.params.CellSize
	}
	g.cells = make([]Cell, n)
	for i := range g.cells {
		g.cells[i] = newCell(i)
	}
}

// Resize rebuilds the grid for the new dimensions. Existing trails are lost,
// even when the column count does not change.
func (g *Grid) Resize(width, height int) {
	g.Build(width, height, g.params.CellSize)
}

// Render draws every cell in column order and returns how many were reset.
func (g *Grid) Render(s Surface) int {
	resets := 0
	for i := range g.cells {
		if g.cells[i].Render(s, g.params, g.height, g.src) {
			resets++
		}
	}
	return resets
}

func (g *Grid) Len() int       { return len(g.cells) }
func (g *Grid) CellSize() int  { return g.params.CellSize }
func (g *Grid) Width() int     { return g.width }
func (g *Grid) Height() int    { return g.height }
func (g *Grid) Params() Params { return g.params }

// Cells returns a copy of the current cells.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}
