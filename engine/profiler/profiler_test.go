package profiler

import (
	"testing"
	"time"
)

func TestTickReportsAfterInterval(t *testing.T) {
	p := NewProfiler(time.Second)
	start := time.Unix(1000, 0)
	p.lastTime = start

	clock := start
	p.now = func() time.Time { return clock }

	for i := 0; i < 59; i++ {
		clock = clock.Add(10 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("tick %d reported before the interval elapsed", i)
		}
	}

	clock = start.Add(2 * time.Second)
	if !p.Tick() {
		t.Fatal("expected a report once the interval elapsed")
	}
	if got := p.Last().FPS; got != 30 {
		t.Errorf("FPS = %v, want 30", got)
	}
	if p.Last().HeapMB <= 0 {
		t.Error("expected a non-zero heap size")
	}

	clock = clock.Add(time.Millisecond)
	if p.Tick() {
		t.Error("interval should restart after a report")
	}
}

func TestNewProfilerDefaultsInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		if got := NewProfiler(interval).updateInterval; got != time.Second {
			t.Errorf("NewProfiler(%v) interval = %v, want 1s", interval, got)
		}
	}
}
