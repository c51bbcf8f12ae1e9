package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuietBarNoOps(t *testing.T) {
	bar := New(0, 100, true)
	require.NotPanics(t, func() {
		bar.Increment()
		bar.Close()
	})
}

func TestZeroTotalBarNoOps(t *testing.T) {
	bar := New(0, 0, false)
	require.NotPanics(t, func() {
		bar.Increment()
		bar.Close()
	})
}

func TestNilBarNoOps(t *testing.T) {
	var bar *Bar
	require.NotPanics(t, func() {
		bar.Increment()
		bar.Close()
	})
}
