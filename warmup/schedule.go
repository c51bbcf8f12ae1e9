package warmup

// window is a half-open range [Start, End) of warmup iteration indices
// (0-based) during which the mass-matrix adapter is actively
// accumulating statistics. The mass matrix is finalized and reset at the
// end of every window.
type window struct {
	Start, End int
}

// schedule computes the windowed warmup plan described in spec.md §4.G:
// an initial buffer of ~15% of warmup adapting step size only, a middle
// region of doubling windows (25, 50, 100, ...) adapting both step size
// and mass matrix, and a final buffer of ~10% adapting step size only.
//
// If numWarmup is too short to fit both buffers, the whole run falls
// back to a step-size-only schedule (no windows) rather than producing a
// degenerate or negative-length window.
func schedule(numWarmup int) []window {
	if numWarmup <= 0 {
		return nil
	}
	initBuffer := maxInt(1, round(0.15*float64(numWarmup)))
	termBuffer := maxInt(1, round(0.10*float64(numWarmup)))
	if initBuffer+termBuffer >= numWarmup {
		return nil
	}

	end := numWarmup - termBuffer
	var windows []window
	start := initBuffer
	size := 25
	for start < end {
		stop := start + size
		if stop > end {
			stop = end
		}
		windows = append(windows, window{Start: start, End: stop})
		start = stop
		size *= 2
	}
	return windows
}

// inWindow reports whether iteration i (0-based) falls inside one of the
// mass-matrix-adapting windows, and if so whether i is the last
// iteration of that window (the point at which the mass matrix should be
// finalized and reset).
func inWindow(windows []window, i int) (active, closes bool) {
	for _, w := range windows {
		if i >= w.Start && i < w.End {
			return true, i == w.End-1
		}
	}
	return false, false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func round(x float64) int {
	return int(x + 0.5)
}
