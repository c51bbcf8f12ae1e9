// Package floatutils provides utilities for working with floats.
//
// Adapted from the teacher's utils/floatutils package, which held a
// single float64 Clip helper; this repo keeps Clip for the dual-averaging
// step-size clamp and adds Clip32 for the sampler's float32 working
// precision, exercised by the mass-matrix jitter (adapt.MassMatrix).
package floatutils

import "math"

// Clip returns value clamped to [min, max].
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Clip32 is the float32 analogue of Clip.
func Clip32(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
