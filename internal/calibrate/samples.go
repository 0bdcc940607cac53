package calibrate

import (
	"image"

	"sevenseg-reader/internal/region"
	"sevenseg-reader/pkg/geometry"
)

// sampleSegments derives the segment sample pixels for one digit from
// its upper and lower holes. Each hole pixel probes a fixed offset
// toward each adjacent segment; the probed pixel is kept only if it is
// detectable, so probes that overshoot the glyph contribute nothing.
func sampleSegments(upper, lower Hole, detectable *region.Bitmap, opts Options) SampleSet {
	var set SampleSet
	add := func(x, y, seg int) {
		if detectable.In(x, y) && detectable.At(x, y) {
			set[seg] = append(set[seg], image.Point{X: x, Y: y})
		}
	}

	for _, p := range upper.Points {
		add(p.X, p.Y-opts.Drop, SegA)
		add(p.X-opts.Reach, p.Y, SegF)
		add(p.X+opts.Reach, p.Y, SegB)
		add(p.X, p.Y+opts.Drop, SegG)
	}
	for _, p := range lower.Points {
		add(p.X-opts.Reach, p.Y, SegE)
		add(p.X+opts.Reach, p.Y, SegC)
		add(p.X, p.Y+opts.Drop, SegD)
	}
	return set
}

// sampleDecimalPoint locates the digit's decimal point by flood-filling
// the difference grid from just past the bottom-right extent of the
// segment samples. Only pixels within the window around the seed are
// kept; lens blur can otherwise bleed the fill into segment C or D of
// the neighboring digit.
func sampleDecimalPoint(set *SampleSet, diff *region.Grid, opts Options) []image.Point {
	maxX, maxY := -1, -1
	for seg := SegA; seg <= SegG; seg++ {
		for _, p := range set[seg] {
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	if maxX < 0 {
		return nil
	}

	seed := image.Point{X: maxX + 2, Y: maxY + 2}
	_, grown := region.Collect(diff, func(v, _, _ int, _ *region.Grid) bool {
		return v > opts.DPThreshold
	}, nil, seed)

	window := geometry.RectInt{
		X:      seed.X - opts.DPWindow,
		Y:      seed.Y - opts.DPWindow,
		Width:  2*opts.DPWindow + 1,
		Height: 2*opts.DPWindow + 1,
	}
	var kept []image.Point
	for _, p := range grown {
		if window.Contains(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
