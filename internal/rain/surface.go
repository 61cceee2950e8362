package rain

import "image/color"

// Surface is the 2D drawing contract the engine paints onto.
//
// Coordinates are pixels. FillText centers the glyph horizontally on x and
// treats y as the text baseline.
type Surface interface {
	Width() int
	Height() int
	SetSize(w, h int)
	FillRect(x, y, w, h int, c color.NRGBA)
	SetFont(px int)
	SetFillColor(c color.NRGBA)
	FillText(r rune, x, y float64)
}

// Source is the randomness a cell consumes. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}
