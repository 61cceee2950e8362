package config

import "sort"

var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"storm": func(c *Config) {
		c.Rain.FPS = 40
		c.Rain.Step = 1.2
		c.Rain.ResetChance = 0.06
		c.Rain.CellSize = 14
	},
	"drizzle": func(c *Config) {
		c.Rain.FPS = 12
		c.Rain.Step = 0.6
		c.Rain.ResetChance = 0.015
		c.Rain.Fade = 0.1
		c.Rain.CellSize = 20
	},
	"dense": func(c *Config) {
		c.Rain.CellSize = 10
		c.Rain.FPS = 30
		c.Rain.ResetChance = 0.05
		c.Rain.Alphabet = "latin"
	},
}

// GetPreset returns the default config with the named preset applied, or
// nil when there is no such preset.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply overlays preset name onto c. Only the fields the preset sets are
// touched, so values loaded from a file or chosen for a surface survive.
func (c *Config) Apply(name string) bool {
	apply, ok := Presets[name]
	if !ok {
		return false
	}
	apply(c)
	return true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for k := range Presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
