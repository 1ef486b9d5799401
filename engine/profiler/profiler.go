// Package profiler keeps a short history of frame times and reads the
// runtime counters the debug overlay shows.
package profiler

import (
	"runtime"
	"time"
)

// Frames is a ring of the most recent frame durations.
type Frames struct {
	durs  []time.Duration
	next  int
	count int
	total time.Duration
	last  time.Time
	now   func() time.Time
}

// NewFrames keeps up to capacity samples.
func NewFrames(capacity int) *Frames {
	if capacity <= 0 {
		capacity = 120
	}
	return &Frames{durs: make([]time.Duration, capacity), now: time.Now}
}

// Tick marks the start of a frame and records the time since the previous one.
func (f *Frames) Tick() {
	now := f.now()
	if !f.last.IsZero() {
		f.Add(now.Sub(f.last))
	}
	f.last = now
}

// Add records one frame duration.
func (f *Frames) Add(d time.Duration) {
	if f.count == len(f.durs) {
		f.total -= f.durs[f.next]
	} else {
		f.count++
	}
	f.durs[f.next] = d
	f.total += d
	f.next = (f.next + 1) % len(f.durs)
}

func (f *Frames) Len() int { return f.count }

// Average is the mean over the recorded frames.
func (f *Frames) Average() time.Duration {
	if f.count == 0 {
		return 0
	}
	return f.total / time.Duration(f.count)
}

// Worst is the longest recorded frame.
func (f *Frames) Worst() time.Duration {
	var w time.Duration
	for i := 0; i < f.count; i++ {
		w = max(w, f.durs[i])
	}
	return w
}

// FPS derived from Average.
func (f *Frames) FPS() float64 {
	avg := f.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// Memory is a snapshot of the heap counters.
type Memory struct {
	Alloc   uint64
	Mallocs uint64
	NumGC   uint32
}

// ReadMemory stops the world briefly; call it at most once per frame.
func ReadMemory() Memory {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Memory{Alloc: m.Alloc, Mallocs: m.Mallocs, NumGC: m.NumGC}
}

func NumGoroutine() int { return runtime.NumGoroutine() }
func NumCPU() int       { return runtime.NumCPU() }
