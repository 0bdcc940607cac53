// Package decode classifies segment pixels against the calibration
// references and turns the per-digit bitmasks into characters.
package decode

import (
	"gonum.org/v1/gonum/stat"

	"sevenseg-reader/internal/calibrate"
	"sevenseg-reader/internal/frame"
)

// ambientSamples is the approximate number of background probes per
// axis when estimating lighting drift.
const ambientSamples = 40

// Ambient estimates the brightness drift between calibration time and
// the current frame by sampling background pixels at a fixed stride and
// averaging their deviation from the unlit reference. Returns 0 when no
// background pixel falls on the sampling lattice.
func Ambient(f *frame.Frame, cal *calibrate.Calibration) float64 {
	strideX := cal.Width / ambientSamples
	if strideX < 1 {
		strideX = 1
	}
	strideY := cal.Height / ambientSamples
	if strideY < 1 {
		strideY = 1
	}

	var deltas []float64
	for y := 0; y < cal.Height; y += strideY {
		for x := 0; x < cal.Width; x += strideX {
			if !cal.Background.At(x, y) {
				continue
			}
			deltas = append(deltas, float64(f.Gray(x, y)-cal.UnlitRef[y*cal.Width+x]))
		}
	}
	if len(deltas) == 0 {
		return 0
	}
	return stat.Mean(deltas, nil)
}
