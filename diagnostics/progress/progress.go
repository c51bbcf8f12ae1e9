// Package progress reports warmup/sampling progress for a single chain,
// grounded on the teacher's experiment.Online, which drives a
// progressbar.ProgressBar the same way: created once up front with the
// total iteration count, displayed, and incremented once per transition.
package progress

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/progressbar"
)

// Bar wraps a progressbar.ProgressBar, tolerating a nil receiver so that
// disabling progress reporting (Options.Quiet) needs no conditional at
// every call site.
type Bar struct {
	inner *progressbar.ProgressBar
}

// New creates a progress bar covering total transitions, labeled with the
// chain index. If quiet is true, New returns a Bar that silently no-ops.
func New(chainIdx, total int, quiet bool) *Bar {
	if quiet || total <= 0 {
		return &Bar{}
	}
	fmt.Printf("chain %d:\n", chainIdx)
	bar := progressbar.New(50, total, 500*time.Millisecond, true)
	bar.Display()
	return &Bar{inner: bar}
}

// Increment advances the bar by one transition.
func (b *Bar) Increment() {
	if b == nil || b.inner == nil {
		return
	}
	b.inner.Increment()
}

// Close finalizes the bar's display.
func (b *Bar) Close() {
	if b == nil || b.inner == nil {
		return
	}
	b.inner.Close()
}
