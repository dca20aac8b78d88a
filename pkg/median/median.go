// Package median implements the fixed-window median smoother applied to
// per-channel distance readings.
package median

import (
	"fmt"
	"sort"
)

// DefaultWindow keeps the window odd so the median is unambiguous.
const DefaultWindow = 5

// Filter holds the last W pushed values in arrival order. Output is a
// pure function of the input history. Not safe for concurrent use.
type Filter struct {
	window  int
	buf     []float64 // ring, arrival order
	scratch []float64 // reused for sorting, no per-push allocation
	next    int
	count   int
}

func NewFilter(window int) (*Filter, error) {
	if window < 1 {
		return nil, fmt.Errorf("smoothing window must be >= 1, got %d", window)
	}
	return &Filter{
		window:  window,
		buf:     make([]float64, window),
		scratch: make([]float64, window),
	}, nil
}

// Window returns the configured window size.
func (f *Filter) Window() int { return f.window }

// Push records a value and, once the window is warm, returns the median
// of the current window. For an even window the lower of the two middle
// values is returned.
func (f *Filter) Push(v float64) (float64, bool) {
	f.buf[f.next] = v
	f.next = (f.next + 1) % f.window
	if f.count < f.window {
		f.count++
	}
	if f.count < f.window {
		return 0, false
	}

	copy(f.scratch, f.buf)
	sort.Float64s(f.scratch)
	return f.scratch[(f.window-1)/2], true
}
