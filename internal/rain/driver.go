package rain

import (
	"context"
	"image/color"
	"sync"
)

const DefaultFPS = 26

// Style is what the driver paints with on every rendered frame.
type Style struct {
	FPS   float64
	Fade  color.NRGBA // overlay that dims previous frames into trails
	Glyph color.NRGBA
}

func DefaultStyle() Style {
	return Style{
		FPS:   DefaultFPS,
		Fade:  color.NRGBA{A: 13}, // ~0.05 alpha
		Glyph: color.NRGBA{R: 0x0a, G: 0xff, B: 0x0a, A: 0xff},
	}
}

// Frame describes one painted frame.
type Frame struct {
	Index     int
	Timestamp float64 // ms, scheduler clock
	Interval  float64 // ms since the previous painted frame, 0 for the first
	Columns   int
	Resets    int
}

// FrameObserver is notified after each painted frame.
type FrameObserver interface {
	OnFrame(f Frame)
}

// FrameObserverFunc adapts a function to FrameObserver.
type FrameObserverFunc func(f Frame)

func (fn FrameObserverFunc) OnFrame(f Frame) { fn(f) }

// Driver throttles scheduler callbacks to the target frame rate and repaints
// the surface when a frame is due.
type Driver struct {
	mu        sync.Mutex
	grid      *Grid
	surface   Surface
	sched     FrameScheduler
	style     Style
	interval  float64
	observers []FrameObserver

	accumulated float64
	last        float64
	lastPaint   float64
	ticks       int
	frames      int

	running bool
	gen     uint64
	pending FrameID
}

func NewDriver(grid *Grid, surface Surface, sched FrameScheduler, style Style) (*Driver, error) {
	if style.FPS <= 0 {
		return nil, ErrInvalidFrameRate
	}
	return &Driver{
		grid:     grid,
		surface:  surface,
		sched:    sched,
		style:    style,
		interval: 1000 / style.FPS,
	}, nil
}

func (d *Driver) AddObserver(o FrameObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Tick handles one scheduler callback at timestamp t (ms). Time accumulates
// until it exceeds the frame interval; the tick that finds it exceeded
// paints and resets the accumulator. It reports whether it painted.
func (d *Driver) Tick(t float64) bool {
	d.mu.Lock()
	frame, painted := d.tickLocked(t)
	observers := d.observers
	d.mu.Unlock()

	if painted {
		for _, o := range observers {
			o.OnFrame(frame)
		}
	}
	return painted
}

func (d *Driver) tickLocked(t float64) (Frame, bool) {
	delta := t - d.last
	d.last = t
	d.ticks++

	if d.accumulated <= d.interval {
		d.accumulated += delta
		return Frame{}, false
	}

	w, h := d.surface.Width(), d.surface.Height()
	d.surface.FillRect(0, 0, w, h, d.style.Fade)
	d.surface.SetFont(d.grid.CellSize())
	d.surface.SetFillColor(d.style.Glyph)
	resets := d.grid.Render(d.surface)
	d.accumulated = 0

	f := Frame{
		Index:     d.frames,
		Timestamp: t,
		Columns:   d.grid.Len(),
		Resets:    resets,
	}
	if d.frames > 0 {
		f.Interval = t - d.lastPaint
	}
	d.lastPaint = t
	d.frames++
	return f, true
}

// Start begins requesting frames. It is a no-op if already running.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true
	d.gen++
	d.scheduleLocked()
}

// Stop cancels the next scheduled callback. It is a no-op if not running.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.running = false
	d.gen++
	d.sched.CancelFrame(d.pending)
}

// Run starts the driver and stops it when ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	d.Start()
	<-ctx.Done()
	d.Stop()
	return ctx.Err()
}

func (d *Driver) scheduleLocked() {
	gen := d.gen
	d.pending = d.sched.RequestFrame(func(ts float64) {
		d.onFrame(gen, ts)
	})
}

// onFrame runs a scheduled callback. The generation check, the tick and the
// next request share one critical section, so once Stop returns no callback
// from the stopped run can tick.
func (d *Driver) onFrame(gen uint64, ts float64) {
	d.mu.Lock()
	if !d.running || gen != d.gen {
		d.mu.Unlock()
		return
	}
	frame, painted := d.tickLocked(ts)
	observers := d.observers
	d.scheduleLocked()
	d.mu.Unlock()

	if painted {
		for _, o := range observers {
			o.OnFrame(frame)
		}
	}
}

// Resize updates the surface backing size and rebuilds the grid. Timing
// state is left alone.
func (d *Driver) Resize(w, h int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.surface.SetSize(w, h)
	d.grid.Resize(w, h)
}

func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *Driver) Ticks() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

func (d *Driver) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Interval is the target frame interval in milliseconds.
func (d *Driver) Interval() float64 { return d.interval }

// Accumulated is the time gathered toward the next frame, in milliseconds.
func (d *Driver) Accumulated() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.accumulated
}

func (d *Driver) Grid() *Grid { return d.grid }

func (d *Driver) Surface() Surface { return d.surface }

// SetStyle swaps colors. The frame rate is fixed at construction.
func (d *Driver) SetStyle(s Style) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s.FPS = d.style.FPS
	d.style = s
}

func (d *Driver) Style() Style {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.style
}
