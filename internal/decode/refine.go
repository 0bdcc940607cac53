package decode

import (
	"image"

	"sevenseg-reader/internal/calibrate"
	"sevenseg-reader/internal/frame"
)

// refineFraction is the agreement level at which a segment's sample set
// is narrowed to its majority subset.
const refineFraction = 0.7

// Refine adjusts the calibration's segment sample sets using the live
// frame: when more than 70% of a segment's samples agree on a state,
// the minority pixels are dropped. Over time this sheds samples that
// landed on segment edges or neighboring glyphs during initial
// calibration. A split vote leaves the set untouched, so a set is never
// emptied.
func Refine(f *frame.Frame, cal *calibrate.Calibration, cls Classifier) {
	for d := range cal.Samples {
		for seg := range cal.Samples[d] {
			pts := cal.Samples[d][seg]
			if len(pts) == 0 {
				continue
			}

			var lit, unlit []image.Point
			for _, p := range pts {
				if cls.Lit(f, p.X, p.Y) {
					lit = append(lit, p)
				} else {
					unlit = append(unlit, p)
				}
			}

			cut := refineFraction * float64(len(pts))
			switch {
			case float64(len(lit)) > cut:
				cal.Samples[d][seg] = lit
			case float64(len(unlit)) > cut:
				cal.Samples[d][seg] = unlit
			}
		}
	}
}
