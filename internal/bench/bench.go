// Package bench runs the rain engine headless on a fake clock to measure how
// the driver throttles different callback rates.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/rain"
	"github.com/san-kum/glyphfall/internal/storage"
	"github.com/san-kum/glyphfall/internal/surface"
)

// ticksPerCheck is how many callbacks run between context checks.
const ticksPerCheck = 256

var ErrInvalidRun = errors.New("bench: rate and duration must be positive")

type Options struct {
	Width    int
	Height   int
	Duration time.Duration
}

type Result struct {
	Hz      float64
	Width   int
	Height  int
	Columns int
	Ticks   int
	Frames  []rain.Frame
	Metrics map[string]float64
	Elapsed time.Duration
}

// RunError ties a failure to the rate that produced it.
type RunError struct {
	Hz      float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("bench at %.0f Hz: %v", e.Hz, e.Wrapped)
}

func (e *RunError) Unwrap() error { return e.Wrapped }

// Run drives one engine at hz callbacks per second for opts.Duration of
// simulated time on a terminal-sized surface.
func Run(ctx context.Context, cfg *config.Config, hz float64, opts Options) (*Result, error) {
	if hz <= 0 || opts.Duration <= 0 {
		return nil, ErrInvalidRun
	}

	cell := cfg.Rain.CellSize
	term := surface.NewTerm(opts.Width/cell, opts.Height/cell, cell)
	grid, err := rain.NewGrid(term.Width(), term.Height(), cfg.Params(), rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}
	sched := rain.NewManualScheduler()
	d, err := rain.NewDriver(grid, term, sched, cfg.Style())
	if err != nil {
		return nil, err
	}
	rec := storage.NewRecorder()
	d.AddObserver(rec)

	total := int(opts.Duration.Seconds() * hz)
	start := time.Now()
	d.Start()
	defer d.Stop()
	for done := 0; done < total; {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		n := min(ticksPerCheck, total-done)
		sched.Step(n, 1000/hz)
		done += n
	}

	frames := rec.Frames()
	return &Result{
		Hz:      hz,
		Width:   term.Width(),
		Height:  term.Height(),
		Columns: grid.Len(),
		Ticks:   d.Ticks(),
		Frames:  frames,
		Metrics: storage.Summarize(frames, d.Ticks()),
		Elapsed: time.Since(start),
	}, nil
}

// Ensemble runs one engine per rate concurrently. Every engine uses the same
// seed so runs differ only in their callback rate.
type Ensemble struct {
	cfg   *config.Config
	rates []float64
	opts  Options
}

func NewEnsemble(cfg *config.Config, rates []float64, opts Options) *Ensemble {
	return &Ensemble{cfg: cfg, rates: rates, opts: opts}
}

// Run returns results in rate order.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.rates))
	errs := make([]error, len(e.rates))

	var wg sync.WaitGroup
	for i, hz := range e.rates {
		wg.Add(1)
		go func(idx int, hz float64) {
			defer wg.Done()
			res, err := Run(ctx, e.cfg, hz, e.opts)
			if err != nil {
				errs[idx] = &RunError{Hz: hz, Wrapped: err}
				return
			}
			results[idx] = res
		}(i, hz)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}
