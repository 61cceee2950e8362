package rain

import (
	"sync"
	"time"
)

// FrameID identifies a pending frame request.
type FrameID uint64

// FrameFunc receives the callback timestamp in milliseconds.
type FrameFunc func(ts float64)

// FrameScheduler requests the next paint opportunity, in the manner of a
// browser's requestAnimationFrame/cancelAnimationFrame pair.
type FrameScheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type pendingFrame struct {
	id FrameID
	fn FrameFunc
}

// ManualScheduler is a deterministic scheduler driven by an explicit clock.
// Callbacks fire only from Advance.
type ManualScheduler struct {
	mu      sync.Mutex
	now     float64
	nextID  FrameID
	pending []pendingFrame
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) RequestFrame(fn FrameFunc) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.pending = append(s.pending, pendingFrame{id: s.nextID, fn: fn})
	return s.nextID
}

func (s *ManualScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pending {
		if p.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by ms and fires every callback that was
// pending before the call. Callbacks requested while firing wait for the
// next Advance. It returns the number of callbacks fired.
func (s *ManualScheduler) Advance(ms float64) int {
	s.mu.Lock()
	s.now += ms
	now := s.now
	due := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, p := range due {
		p.fn(now)
	}
	return len(due)
}

// Step calls Advance n times.
func (s *ManualScheduler) Step(n int, ms float64) int {
	fired := 0
	for i := 0; i < n; i++ {
		fired += s.Advance(ms)
	}
	return fired
}

func (s *ManualScheduler) Now() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// TimerScheduler fires callbacks on the wall clock at a fixed rate.
// Timestamps are milliseconds since the scheduler was created.
type TimerScheduler struct {
	mu     sync.Mutex
	start  time.Time
	period time.Duration
	nextID FrameID
	timers map[FrameID]*time.Timer
}

// NewTimerScheduler returns a scheduler firing at roughly hz callbacks per second.
func NewTimerScheduler(hz float64) *TimerScheduler {
	if hz <= 0 {
		hz = 60
	}
	return &TimerScheduler{
		start:  time.Now(),
		period: time.Duration(float64(time.Second) / hz),
		timers: make(map[FrameID]*time.Timer),
	}
}

func (s *TimerScheduler) RequestFrame(fn FrameFunc) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.timers[id] = time.AfterFunc(s.period, func() {
		s.mu.Lock()
		if _, ok := s.timers[id]; !ok {
			s.mu.Unlock()
			return
		}
		delete(s.timers, id)
		s.mu.Unlock()
		fn(float64(time.Since(s.start).Microseconds()) / 1000)
	})
	return id
}

func (s *TimerScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Close cancels every pending callback.
func (s *TimerScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
