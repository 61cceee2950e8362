package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/san-kum/glyphfall/internal/rain"
)

// Canvas is a persistent raylib render texture. Drawing calls must run between
// Begin and End so they land on the texture rather than the screen.
type Canvas struct {
	tex      rl.RenderTexture2D
	w, h     int
	font     rl.Font
	fontPx   int
	fill     rl.Color
	alphabet rain.Alphabet
	loaded   bool
}

func NewCanvas(w, h int, alphabet rain.Alphabet) *Canvas {
	c := &Canvas{alphabet: alphabet}
	c.SetSize(w, h)
	return c
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// SetSize replaces the texture, which clears it.
func (c *Canvas) SetSize(w, h int) {
	if c.loaded {
		rl.UnloadRenderTexture(c.tex)
	}
	c.w, c.h = max(w, 1), max(h, 1)
	c.tex = rl.LoadRenderTexture(int32(c.w), int32(c.h))
	c.loaded = true
	rl.BeginTextureMode(c.tex)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()
}

func (c *Canvas) Begin() { rl.BeginTextureMode(c.tex) }
func (c *Canvas) End()   { rl.EndTextureMode() }

func (c *Canvas) FillRect(x, y, w, h int, col color.NRGBA) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), toColor(col))
}

// SetFont loads gomono at px for the alphabet's codepoints. Glyphs the font
// lacks render with raylib's fallback glyph.
func (c *Canvas) SetFont(px int) {
	if px == c.fontPx && c.font.BaseSize > 0 {
		return
	}
	if c.font.BaseSize > 0 {
		rl.UnloadFont(c.font)
	}
	c.font = rl.LoadFontFromMemory(".ttf", gomono.TTF, int32(px), []rune(c.alphabet))
	rl.SetTextureFilter(c.font.Texture, rl.FilterBilinear)
	c.fontPx = px
}

func (c *Canvas) SetFillColor(col color.NRGBA) { c.fill = toColor(col) }

// FillText centers r on x with its baseline at y.
func (c *Canvas) FillText(r rune, x, y float64) {
	size := float32(c.fontPx)
	w := rl.MeasureTextEx(c.font, string(r), size, 0).X
	pos := rl.NewVector2(float32(x)-w/2, float32(y)-size)
	rl.DrawTextCodepoint(c.font, r, pos, size, c.fill)
}

// Draw blits the texture to the screen at the origin. Render textures are
// stored upside down, hence the negative source height.
func (c *Canvas) Draw() {
	src := rl.NewRectangle(0, 0, float32(c.tex.Texture.Width), -float32(c.tex.Texture.Height))
	rl.DrawTextureRec(c.tex.Texture, src, rl.NewVector2(0, 0), rl.White)
}

func (c *Canvas) Unload() {
	if c.loaded {
		rl.UnloadRenderTexture(c.tex)
		c.loaded = false
	}
	if c.font.BaseSize > 0 {
		rl.UnloadFont(c.font)
	}
}

func toColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
