package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/glyphfall/internal/rain"
)

const (
	DefaultFade        = 0.05
	DefaultColor       = "#0aff0a"
	DefaultTheme       = "matrix"
	DefaultAddr        = ":5050"
	DefaultEndpoint    = "http://localhost:5050/contact"
	DefaultHTTPTimeout = 10 * time.Second
)

type Config struct {
	Seed    int64         `yaml:"seed"`
	Theme   string        `yaml:"theme"`
	Rain    RainConfig    `yaml:"rain"`
	Nav     NavConfig     `yaml:"nav"`
	Contact ContactConfig `yaml:"contact"`
	Server  ServerConfig  `yaml:"server"`
}

type RainConfig struct {
	CellSize    int     `yaml:"cell_size"`
	FPS         float64 `yaml:"fps"`
	Step        float64 `yaml:"step"`
	ResetChance float64 `yaml:"reset_chance"`
	Alphabet    string  `yaml:"alphabet"`
	Fade        float64 `yaml:"fade"`
	Color       string  `yaml:"color"`
}

type NavConfig struct {
	Threshold float64 `yaml:"threshold"`
}

type ContactConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	Method      string        `yaml:"method"`
	Placeholder bool          `yaml:"placeholder"`
	Timeout     time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	RequireCSRF bool          `yaml:"require_csrf"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: DefaultTheme,
		Rain: RainConfig{
			CellSize:    rain.DefaultCellSize,
			FPS:         rain.DefaultFPS,
			Step:        rain.DefaultStep,
			ResetChance: rain.DefaultResetChance,
			Alphabet:    "katakana",
			Fade:        DefaultFade,
			Color:       DefaultColor,
		},
		Nav: NavConfig{Threshold: 100},
		Contact: ContactConfig{
			Endpoint: DefaultEndpoint,
			Method:   "POST",
			Timeout:  DefaultHTTPTimeout,
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			RequireCSRF: true,
			TokenTTL:    time.Hour,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Rain.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("rain.cell_size must be positive, got %d", c.Rain.CellSize))
	}
	if c.Rain.FPS <= 0 {
		errs = append(errs, fmt.Errorf("rain.fps must be positive, got %g", c.Rain.FPS))
	}
	if c.Rain.Step <= 0 {
		errs = append(errs, fmt.Errorf("rain.step must be positive, got %g", c.Rain.Step))
	}
	if c.Rain.ResetChance < 0 || c.Rain.ResetChance > 1 {
		errs = append(errs, fmt.Errorf("rain.reset_chance must be in [0,1], got %g", c.Rain.ResetChance))
	}
	if c.Rain.Fade < 0 || c.Rain.Fade > 1 {
		errs = append(errs, fmt.Errorf("rain.fade must be in [0,1], got %g", c.Rain.Fade))
	}
	if _, err := ParseColor(c.Rain.Color); err != nil {
		errs = append(errs, fmt.Errorf("rain.color: %w", err))
	}
	if c.Nav.Threshold < 0 {
		errs = append(errs, fmt.Errorf("nav.threshold must not be negative, got %g", c.Nav.Threshold))
	}
	return errors.Join(errs...)
}

// Params converts the rain section into engine parameters.
func (c *Config) Params() rain.Params {
	return rain.Params{
		CellSize:    c.Rain.CellSize,
		Step:        c.Rain.Step,
		ResetChance: c.Rain.ResetChance,
		Alphabet:    rain.AlphabetByName(c.Rain.Alphabet),
	}
}

func (c *Config) Style() rain.Style {
	glyph, err := ParseColor(c.Rain.Color)
	if err != nil {
		glyph = rain.DefaultStyle().Glyph
	}
	return rain.Style{
		FPS:   c.Rain.FPS,
		Fade:  color.NRGBA{A: uint8(c.Rain.Fade*255 + 0.5)},
		Glyph: glyph,
	}
}

// ParseColor accepts #rgb and #rrggbb.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
