// Package hmclog is a narrow structured-logging wrapper around
// github.com/rs/zerolog, in the same spirit as the teacher's solver
// package wrapping a single external dependency (gorgonia.Solver) behind
// a small surface tailored to this repo's call sites. The teacher itself
// only ever calls stdlib log.Printf/log.Fatalf (experiment/tracker); the
// wider example pack reaches for zerolog for exactly this kind of
// long-running numerical worker process, so this repo standardizes on it
// for every core-internal log line instead of bare stdlib log.
package hmclog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the sampler's single structured logger. It writes to stderr
// so that stdout stays free for whatever the caller does with draws.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger()

// Divergence logs a numerical divergence encountered during a
// transition: non-finite log-density, gradient, or energy change. The
// transition is rejected; this is purely observational.
func Divergence(chain, iteration int, reason string) {
	Logger.Warn().
		Int("chain", chain).
		Int("iteration", iteration).
		Str("reason", reason).
		Msg("hmc: divergent transition, proposal rejected")
}

// Fallback logs a degenerate mass-matrix estimate (fewer than two warmup
// samples, or all-zero variance) falling back to the identity mass.
func Fallback(chain int, reason string) {
	Logger.Warn().
		Int("chain", chain).
		Str("reason", reason).
		Msg("hmc: mass-matrix estimate degenerate, falling back to identity")
}

// WarmupWindow logs the close of a mass-matrix adaptation window during
// windowed warmup.
func WarmupWindow(chain, window, size int, stepSize float64) {
	Logger.Info().
		Int("chain", chain).
		Int("window", window).
		Int("size", size).
		Float64("stepSize", stepSize).
		Msg("hmc: warmup window closed")
}
