package decode

import (
	"math"

	"sevenseg-reader/internal/calibrate"
	"sevenseg-reader/internal/frame"
)

// Classifier decides lit/unlit for individual pixels of one frame,
// using the calibration references and that frame's ambient offset.
type Classifier struct {
	cal    *calibrate.Calibration
	offset float64
}

// NewClassifier binds a calibration and an ambient offset for one
// frame's worth of classifications.
func NewClassifier(cal *calibrate.Calibration, offset float64) Classifier {
	return Classifier{cal: cal, offset: offset}
}

// Lit classifies the frame pixel at (x, y).
func (c Classifier) Lit(f *frame.Frame, x, y int) bool {
	return c.LitGray(float64(f.Gray(x, y)), x, y)
}

// LitGray classifies a raw grayscale value observed at (x, y). The
// value's distance to the lit and unlit references is normalized by the
// pixel's calibrated range so that low-contrast pixels do not dominate;
// ties go to lit. When no reference exists for the coordinate the
// comparison degrades to raw gray against the difference grid.
func (c Classifier) LitGray(gray float64, x, y int) bool {
	idx := y*c.cal.Width + x
	if idx < 0 || idx >= len(c.cal.LitRef) || idx >= len(c.cal.UnlitRef) {
		return int(gray) > c.cal.Diff.At(x, y)
	}

	lit := float64(c.cal.LitRef[idx])
	unlit := float64(c.cal.UnlitRef[idx])
	rng := math.Abs(lit - unlit)
	if rng < 1 {
		rng = 1 // flat pixel, avoid dividing by zero
	}

	g := gray - c.offset
	distLit := math.Abs(g-lit) / rng
	distUnlit := math.Abs(g-unlit) / rng
	return distLit <= distUnlit
}
