package publisher

import (
	"testing"
	"time"

	"ranger/pkg/registry"
)

type stubSource struct {
	calls int
	seq   uint64
}

func (s *stubSource) Snapshot() registry.Snapshot {
	s.calls++
	s.seq++
	return registry.Snapshot{Sequence: s.seq}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, time.Second); err == nil {
		t.Error("expected error for nil source")
	}
	if _, err := New(&stubSource{}, 0); err == nil {
		t.Error("expected error for zero interval")
	}
	if _, err := New(&stubSource{}, -time.Millisecond); err == nil {
		t.Error("expected error for negative interval")
	}
}

func TestTick_FirstTickExports(t *testing.T) {
	src := &stubSource{}
	p, _ := New(src, 50*time.Millisecond)

	if _, ok := p.Tick(time.Unix(100, 0)); !ok {
		t.Fatal("first tick must export")
	}
	if src.calls != 1 {
		t.Errorf("expected exactly one snapshot call, got %d", src.calls)
	}
}

func TestTick_EnforcesMinimumSpacing(t *testing.T) {
	src := &stubSource{}
	p, _ := New(src, 50*time.Millisecond)

	base := time.Unix(100, 0)
	// Arbitrary now sequence, some inside the interval, some beyond it.
	offsets := []time.Duration{
		0,
		10 * time.Millisecond,
		49 * time.Millisecond,
		50 * time.Millisecond,
		51 * time.Millisecond,
		99 * time.Millisecond,
		100 * time.Millisecond,
		400 * time.Millisecond,
	}

	var lastExport time.Time
	exports := 0
	for _, off := range offsets {
		now := base.Add(off)
		if _, ok := p.Tick(now); ok {
			if exports > 0 && now.Sub(lastExport) < p.Interval() {
				t.Errorf("exports at %v and %v are closer than interval %v",
					lastExport, now, p.Interval())
			}
			lastExport = now
			exports++
		}
	}
	// Expected exports: 0ms, 50ms, 100ms, 400ms.
	if exports != 4 {
		t.Errorf("expected 4 exports, got %d", exports)
	}
	if src.calls != exports {
		t.Errorf("snapshot source called %d times for %d exports", src.calls, exports)
	}
}

func TestTick_NoSnapshotCallWhenSuppressed(t *testing.T) {
	src := &stubSource{}
	p, _ := New(src, time.Second)

	p.Tick(time.Unix(0, 0))
	p.Tick(time.Unix(0, int64(10*time.Millisecond)))
	if src.calls != 1 {
		t.Errorf("suppressed tick must not touch the registry, got %d calls", src.calls)
	}
}
