package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/gui"
	"github.com/san-kum/glyphfall/internal/rain"
	"github.com/san-kum/glyphfall/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	preset     string
	seed       int64
	// rain overrides
	fps         float64
	cellSize    int
	step        float64
	resetChance float64
	alphabet    string
	glyphColor  string
	theme       string
	// live view
	tickRate float64
	pick     bool
	// headless sizes
	width  int
	height int
	// window size
	winWidth  int
	winHeight int
	force     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "glyphfall",
		Short:         "digital rain in the terminal, a window, or headless",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".glyphfall", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.Float64Var(&fps, "fps", rain.DefaultFPS, "target frame rate")
	pf.IntVar(&cellSize, "cell-size", rain.DefaultCellSize, "glyph cell size in pixels")
	pf.Float64Var(&step, "step", rain.DefaultStep, "rows advanced per frame")
	pf.Float64Var(&resetChance, "reset-chance", rain.DefaultResetChance, "chance a column past the bottom restarts each frame")
	pf.StringVar(&alphabet, "alphabet", "katakana", "glyph set: katakana, halfwidth, latin, or literal characters")
	pf.StringVar(&glyphColor, "color", config.DefaultColor, "glyph color")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "terminal theme")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate in the terminal",
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().Float64Var(&tickRate, "tick-rate", viz.DefaultTickRate, "terminal callback rate in Hz")
		c.Flags().BoolVar(&pick, "pick", false, "choose a preset interactively first")
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "animate in a desktop window",
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&winWidth, "width", 1280, "window width")
	windowCmd.Flags().IntVar(&winHeight, "height", 720, "window height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list terminal themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range viz.Themes {
				fmt.Printf("  %-8s %s\n", t.Name, viz.GradientText(strings.Repeat("ｱｲｳｴｵ", 3), t.Trail, t.Head))
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the current settings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, windowCmd, presetsCmd, themesCmd, configCmd)
	rootCmd.AddCommand(benchCommands()...)
	rootCmd.AddCommand(webCommands()...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadConfig starts from the config file, or defaults when there is none,
// overlays the preset and finally any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" && !cfg.Apply(preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Rain.FPS = fps
	}
	if flags.Changed("cell-size") {
		cfg.Rain.CellSize = cellSize
	}
	if flags.Changed("step") {
		cfg.Rain.Step = step
	}
	if flags.Changed("reset-chance") {
		cfg.Rain.ResetChance = resetChance
	}
	if flags.Changed("alphabet") {
		cfg.Rain.Alphabet = alphabet
	}
	if flags.Changed("color") {
		cfg.Rain.Color = glyphColor
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSource(cfg *config.Config) *rand.Rand {
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(s))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The terminal surface narrows full-width kana on its own; halfwidth
	// forms avoid the fallback glyph for anything it can't narrow.
	if cfg.Rain.Alphabet == "katakana" {
		cfg.Rain.Alphabet = "halfwidth"
	}
	src := newSource(cfg)

	if pick {
		return viz.RunPicker(viz.NewPicker(cfg, src, tickRate, slog.Default()))
	}
	m, err := viz.NewModel(cfg, src, tickRate, slog.Default())
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// gomono has no kana; latin keeps the window free of fallback boxes.
	if !cmd.Flags().Changed("alphabet") && cfg.Rain.Alphabet == "katakana" {
		cfg.Rain.Alphabet = "latin"
	}
	return gui.Run(cfg, newSource(cfg), winWidth, winHeight, slog.Default())
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFPS\tCELL\tSTEP\tRESET\tFADE\tALPHABET")
	for _, name := range config.ListPresets() {
		r := config.GetPreset(name).Rain
		fmt.Fprintf(w, "%s\t%.0f\t%d\t%.2f\t%.3f\t%.2f\t%s\n", name, r.FPS, r.CellSize, r.Step, r.ResetChance, r.Fade, r.Alphabet)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "glyphfall.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
