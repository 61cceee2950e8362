package surface

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var monoFont *sfnt.Font

func init() {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		panic("surface: parse gomono: " + err.Error())
	}
	monoFont = f
}

// Raster paints onto an RGBA image with Go Mono glyphs. Glyphs missing from
// the font are replaced with an uppercase Latin letter derived from the rune,
// so kana columns still flicker.
type Raster struct {
	img   *image.RGBA
	faces map[int]font.Face
	face  font.Face
	size  int
	fill  color.NRGBA
	buf   sfnt.Buffer
}

// NewRaster returns a w x h surface filled with opaque black.
func NewRaster(w, h int) *Raster {
	r := &Raster{faces: make(map[int]font.Face)}
	r.SetSize(w, h)
	r.SetFont(16)
	return r
}

func (r *Raster) Width() int  { return r.img.Bounds().Dx() }
func (r *Raster) Height() int { return r.img.Bounds().Dy() }

// SetSize replaces the image; the new one starts black.
func (r *Raster) SetSize(w, h int) {
	r.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

func (r *Raster) FillRect(x, y, w, h int, c color.NRGBA) {
	rect := image.Rect(x, y, x+w, y+h).Intersect(r.img.Bounds())
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Raster) SetFont(px int) {
	if px <= 0 || px == r.size {
		return
	}
	face, ok := r.faces[px]
	if !ok {
		var err error
		face, err = opentype.NewFace(monoFont, &opentype.FaceOptions{
			Size:    float64(px),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return
		}
		r.faces[px] = face
	}
	r.face, r.size = face, px
}

func (r *Raster) SetFillColor(c color.NRGBA) { r.fill = c }

// FillText draws g centered on x with its baseline at y.
func (r *Raster) FillText(g rune, x, y float64) {
	s := string(r.glyph(g))
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(r.fill),
		Face: r.face,
	}
	adv := d.MeasureString(s)
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(x*64) - adv/2,
		Y: fixed.Int26_6(y * 64),
	}
	d.DrawString(s)
}

func (r *Raster) glyph(g rune) rune {
	if idx, err := monoFont.GlyphIndex(&r.buf, g); err == nil && idx != 0 {
		return g
	}
	return 'A' + g%26
}

// Image returns the backing image. It is live; copy it to keep a frame.
func (r *Raster) Image() *image.RGBA { return r.img }

// Snapshot returns a copy of the current frame.
func (r *Raster) Snapshot() *image.RGBA {
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}
