package storage

import (
	"math"
	"sync"

	"github.com/san-kum/glyphfall/internal/rain"
)

// Recorder collects painted frames. Attach it with Driver.AddObserver.
type Recorder struct {
	mu     sync.Mutex
	frames []rain.Frame
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnFrame(f rain.Frame) {
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
}

func (r *Recorder) Frames() []rain.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]rain.Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Summarize computes run metrics. Intervals exclude the first frame, which
// has none.
func Summarize(frames []rain.Frame, ticks int) map[string]float64 {
	m := map[string]float64{
		"frames": float64(len(frames)),
		"ticks":  float64(ticks),
	}
	if len(frames) == 0 {
		return m
	}

	var resets int
	for _, f := range frames {
		resets += f.Resets
	}
	m["resets"] = float64(resets)

	if len(frames) < 2 {
		return m
	}
	minIv, maxIv, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, f := range frames[1:] {
		minIv = math.Min(minIv, f.Interval)
		maxIv = math.Max(maxIv, f.Interval)
		sum += f.Interval
	}
	mean := sum / float64(len(frames)-1)
	m["interval_min"] = minIv
	m["interval_max"] = maxIv
	m["interval_mean"] = mean
	if mean > 0 {
		m["fps"] = 1000 / mean
	}
	return m
}

// Intervals returns the per-frame intervals after the first frame.
func Intervals(frames []rain.Frame) []float64 {
	if len(frames) < 2 {
		return nil
	}
	out := make([]float64, 0, len(frames)-1)
	for _, f := range frames[1:] {
		out = append(out, f.Interval)
	}
	return out
}

func Resets(frames []rain.Frame) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(f.Resets)
	}
	return out
}
