package config

import (
	"image/color"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/glyphfall/internal/rain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Rain.CellSize != 16 {
		t.Errorf("expected cell size 16, got %d", cfg.Rain.CellSize)
	}
	if cfg.Rain.FPS != 26 {
		t.Errorf("expected fps 26, got %f", cfg.Rain.FPS)
	}
	if cfg.Nav.Threshold != 100 {
		t.Errorf("expected threshold 100, got %f", cfg.Nav.Threshold)
	}
	if cfg.Server.Addr != ":5050" {
		t.Errorf("expected addr :5050, got %s", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestStyle(t *testing.T) {
	s := DefaultConfig().Style()
	want := rain.DefaultStyle()
	if s.Glyph != want.Glyph {
		t.Errorf("expected glyph %v, got %v", want.Glyph, s.Glyph)
	}
	if s.Fade.A != 13 {
		t.Errorf("expected fade alpha 13, got %d", s.Fade.A)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#0aff0a", color.NRGBA{0x0a, 0xff, 0x0a, 0xff}, false},
		{"0aff0a", color.NRGBA{0x0a, 0xff, 0x0a, 0xff}, false},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#12345", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rain.CellSize = 0
	cfg.Rain.Color = "green"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, field := range []string{"rain.cell_size", "rain.color"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected %s in %q", field, err)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("storm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Rain.FPS != 40 {
		t.Errorf("expected fps 40, got %f", cfg.Rain.FPS)
	}
	if DefaultConfig().Rain.FPS != 26 {
		t.Error("preset must not mutate defaults")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestApply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Addr = ":9000"
	if !cfg.Apply("drizzle") {
		t.Fatal("expected drizzle preset")
	}
	if cfg.Rain.CellSize != 20 {
		t.Errorf("expected cell size 20, got %d", cfg.Rain.CellSize)
	}
	if cfg.Server.Addr != ":9000" {
		t.Error("apply should only touch rain settings")
	}
	if cfg.Apply("nope") {
		t.Error("expected false for unknown preset")
	}
}

func TestApplyKeepsUnsetFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rain.Color = "#ffb000"
	cfg.Rain.Alphabet = "halfwidth"
	cfg.Rain.Fade = 0.2

	cfg.Apply("storm")
	if cfg.Rain.FPS != 40 {
		t.Errorf("expected storm fps 40, got %f", cfg.Rain.FPS)
	}
	if cfg.Rain.Color != "#ffb000" || cfg.Rain.Alphabet != "halfwidth" || cfg.Rain.Fade != 0.2 {
		t.Errorf("expected color, alphabet and fade kept, got %+v", cfg.Rain)
	}

	cfg.Apply("classic")
	if cfg.Rain.FPS != 40 || cfg.Rain.Alphabet != "halfwidth" {
		t.Errorf("classic should change nothing, got %+v", cfg.Rain)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 4 {
		t.Errorf("expected 4 presets, got %d", len(presets))
	}
	if presets[0] != "classic" {
		t.Errorf("expected sorted list, got %v", presets)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphfall.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Rain.Alphabet = "latin"
	cfg.Contact.Timeout = 3 * time.Second

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Seed != 42 || loaded.Rain.Alphabet != "latin" {
		t.Errorf("unexpected config %+v", loaded)
	}
	if loaded.Contact.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", loaded.Contact.Timeout)
	}
}
