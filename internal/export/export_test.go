package export

import (
	"bytes"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/san-kum/glyphfall/internal/rain"
	"github.com/san-kum/glyphfall/internal/surface"
)

type zeroSource struct{}

func (zeroSource) Intn(n int) int   { return 0 }
func (zeroSource) Float64() float64 { return 0 }

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", PNG, false},
		{"out.GIF", GIF, false},
		{"dir/out.svg", SVG, false},
		{"out.jpg", "", true},
		{"out", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: unexpected error %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.path, tt.want, got)
		}
	}
}

func TestPalette(t *testing.T) {
	p := Palette(color.NRGBA{0x0a, 0xff, 0x0a, 0xff}, 8)
	if len(p) != 8 {
		t.Fatalf("expected 8 colors, got %d", len(p))
	}
	if p[0] != (color.NRGBA{0, 0, 0, 0xff}) {
		t.Errorf("expected black first, got %v", p[0])
	}
	if p[7] != (color.NRGBA{0x0a, 0xff, 0x0a, 0xff}) {
		t.Errorf("expected glyph color last, got %v", p[7])
	}
}

func TestRecorderGIF(t *testing.T) {
	r := surface.NewRaster(64, 48)
	grid, err := rain.NewGrid(64, 48, rain.DefaultParams(), zeroSource{})
	if err != nil {
		t.Fatal(err)
	}
	sched := rain.NewManualScheduler()
	d, err := rain.NewDriver(grid, r, sched, rain.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}

	rec := NewRecorder(r, Palette(rain.DefaultStyle().Glyph, 16), 2, 3)
	d.AddObserver(rec)
	d.Start()
	sched.Step(100, 20)
	d.Stop()

	if rec.Len() != 3 {
		t.Fatalf("expected 3 frames, got %d", rec.Len())
	}

	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("expected 3 images, got %d", len(anim.Image))
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestRecorderEmpty(t *testing.T) {
	rec := NewRecorder(surface.NewRaster(8, 8), Palette(color.NRGBA{A: 0xff}, 2), 1, 0)
	if err := rec.Encode(&bytes.Buffer{}); err == nil {
		t.Error("expected error for empty recording")
	}
}

func TestWritePNG(t *testing.T) {
	r := surface.NewRaster(32, 16)
	var buf bytes.Buffer
	if err := WritePNG(&buf, r.Snapshot()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 32 {
		t.Errorf("expected width 32, got %d", img.Bounds().Dx())
	}
}
