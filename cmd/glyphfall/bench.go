package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/glyphfall/internal/bench"
	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/export"
	"github.com/san-kum/glyphfall/internal/rain"
	"github.com/san-kum/glyphfall/internal/storage"
	"github.com/san-kum/glyphfall/internal/surface"
)

var (
	benchRates    string
	benchDuration time.Duration
	benchSave     bool
	outPath       string
	snapFrames    int
	gifEvery      int
)

func benchCommands() []*cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the engine headless at several callback rates",
		RunE:  benchRain,
	}
	benchCmd.Flags().StringVar(&benchRates, "hz", "30,60,120,240", "comma separated callback rates")
	benchCmd.Flags().DurationVar(&benchDuration, "time", 10*time.Second, "simulated duration per rate")
	benchCmd.Flags().IntVar(&width, "width", 800, "surface width")
	benchCmd.Flags().IntVar(&height, "height", 600, "surface height")
	benchCmd.Flags().BoolVar(&benchSave, "save", true, "store runs in the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list bench runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot frame intervals and resets of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file.png|file.gif|file.svg]",
		Short: "render frames headless and write an image",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&width, "width", 800, "image width")
	snapshotCmd.Flags().IntVar(&height, "height", 600, "image height")
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 120, "frames to render")
	snapshotCmd.Flags().IntVar(&gifEvery, "every", 2, "keep every n-th frame in a gif")

	return []*cobra.Command{benchCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, snapshotCmd}
}

func parseRates(s string) ([]float64, error) {
	var rates []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		hz, err := strconv.ParseFloat(part, 64)
		if err != nil || hz <= 0 {
			return nil, fmt.Errorf("invalid rate %q", part)
		}
		rates = append(rates, hz)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no rates given")
	}
	return rates, nil
}

// newHeadless builds a driver on s stepped by a manual scheduler.
func newHeadless(cfg *config.Config, s rain.Surface) (*rain.Driver, *rain.ManualScheduler, error) {
	grid, err := rain.NewGrid(s.Width(), s.Height(), cfg.Params(), newSource(cfg))
	if err != nil {
		return nil, nil, err
	}
	sched := rain.NewManualScheduler()
	d, err := rain.NewDriver(grid, s, sched, cfg.Style())
	if err != nil {
		return nil, nil, err
	}
	return d, sched, nil
}

func benchRain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rates, err := parseRates(benchRates)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	st := storage.New(dataDir)
	if benchSave {
		if err := st.Init(); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Printf("benchmarking %dx%d at %.0f fps for %v\n\n", width, height, cfg.Rain.FPS, benchDuration)
	results, err := bench.NewEnsemble(cfg, rates, bench.Options{Width: width, Height: height, Duration: benchDuration}).Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HZ\tTICKS\tFRAMES\tFPS\tINTERVAL\tRESETS\tWALL\tRUN")
	for _, res := range results {
		runID := "-"
		if benchSave {
			meta := storage.RunMetadata{
				Preset:     presetName(),
				Seed:       cfg.Seed,
				Width:      res.Width,
				Height:     res.Height,
				CellSize:   cfg.Rain.CellSize,
				FPS:        cfg.Rain.FPS,
				CallbackHz: res.Hz,
				Duration:   float64(benchDuration.Milliseconds()),
				Ticks:      res.Ticks,
				Metrics:    res.Metrics,
			}
			if runID, err = st.Save(meta, res.Frames); err != nil {
				return err
			}
			slog.Info("saved bench run", "id", runID, "hz", res.Hz)
		}

		fmt.Fprintf(w, "%.0f\t%d\t%d\t%.1f\t%.2fms\t%.0f\t%v\t%s\n",
			res.Hz, res.Ticks, len(res.Frames), res.Metrics["fps"], res.Metrics["interval_mean"], res.Metrics["resets"], res.Elapsed.Round(time.Microsecond), runID)
	}

	return w.Flush()
}

func presetName() string {
	if preset == "" {
		return "classic"
	}
	return preset
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tFPS\tHZ\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.0f\t%.0f\t%.0f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.FPS,
			run.CallbackHz,
			run.Metrics["frames"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("target: %.0f fps at %.0f Hz\n", meta.FPS, meta.CallbackHz)
	fmt.Printf("frames: %d\n\n", len(frames))

	plots := []struct {
		data    []float64
		caption string
	}{
		{storage.Intervals(frames), "frame interval (ms)"},
		{storage.Resets(frames), "column resets per frame"},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

// output returns stdout or the --out file.
func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.New(dataDir).ExportCSV(out, args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.New(dataDir).ExportJSON(out, args[0])
}

func snapshot(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := export.FormatFromPath(path)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The bundled raster font has latin glyphs only.
	if format != export.SVG && !cmd.Flags().Changed("alphabet") && cfg.Rain.Alphabet == "katakana" {
		cfg.Rain.Alphabet = "latin"
	}

	var (
		s      rain.Surface
		raster *surface.Raster
		svg    *surface.SVG
	)
	if format == export.SVG {
		svg = surface.NewSVG(width, height)
		s = svg
	} else {
		raster = surface.NewRaster(width, height)
		s = raster
	}

	d, sched, err := newHeadless(cfg, s)
	if err != nil {
		return err
	}
	var gifRec *export.Recorder
	if format == export.GIF {
		gifRec = export.NewRecorder(raster, export.Palette(cfg.Style().Glyph, 32), gifEvery, 0)
		d.AddObserver(gifRec)
	}

	d.Start()
	for d.Frames() < snapFrames {
		sched.Advance(d.Interval() / 2)
	}
	d.Stop()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case export.PNG:
		err = export.WritePNG(f, raster.Snapshot())
	case export.GIF:
		err = gifRec.Encode(f)
	case export.SVG:
		err = svg.Encode(f)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", path, d.Frames())
	return nil
}
