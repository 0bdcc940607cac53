// Package calibrate locates the six seven-segment digits of a display
// from one all-lit and one all-dark reference frame, with no prior
// knowledge of where the digits sit in the frame.
//
// The anchor geometry is the pair of enclosed dark "holes" inside a
// fully lit figure-eight glyph: one above the middle segment and one
// below it. Every segment's sample pixels are derived from those two
// holes by fixed offsets.
package calibrate

import (
	"errors"
	"fmt"
	"image"

	"sevenseg-reader/internal/frame"
	"sevenseg-reader/internal/region"
	"sevenseg-reader/pkg/geometry"
)

// Segment indices within a SampleSet. Bit i of a digit's decoded
// bitmask corresponds to segment i; the decimal point is sampled like a
// segment but reported as a separate flag.
const (
	SegA  = 0
	SegB  = 1
	SegC  = 2
	SegD  = 3
	SegE  = 4
	SegF  = 5
	SegG  = 6
	SegDP = 7

	SegmentCount = 8
)

// SampleSet holds, for one digit, the pixel coordinates sampled each
// frame to classify each segment plus the decimal point.
type SampleSet [SegmentCount][]image.Point

// Options holds the calibration thresholds and the display-geometry
// constants. The offsets are empirically tuned for one physical display
// and exposed here so they can be recalibrated for other sizes.
type Options struct {
	// GrayThreshold is the minimum lit/unlit grayscale difference for a
	// pixel to count as detectable.
	GrayThreshold int `json:"gray_threshold" validate:"gte=0,lte=255"`

	// DPThreshold is the difference-grid level used when flood-filling
	// the decimal point.
	DPThreshold int `json:"dp_threshold" validate:"gte=0,lte=255"`

	// Reach is the horizontal probe distance from a hole pixel to the
	// vertical segments (B, C, E, F).
	Reach int `json:"reach" validate:"gte=1"`

	// Drop is the vertical probe distance from a hole pixel to the
	// horizontal segments (A, D, G).
	Drop int `json:"drop" validate:"gte=1"`

	// DPWindow clips the decimal-point flood fill to +-window pixels
	// around its seed, suppressing bleed-through from adjacent segments
	// under lens blur.
	DPWindow int `json:"dp_window" validate:"gte=1"`

	// MinHolePixels is the noise floor: hole components with this many
	// pixels or fewer are discarded.
	MinHolePixels int `json:"min_hole_pixels" validate:"gte=0"`

	// Digits is the number of digit positions on the display.
	Digits int `json:"digits" validate:"gte=1"`

	// ClusterRounds bounds the k-means iterations when grouping holes
	// into digits.
	ClusterRounds int `json:"cluster_rounds" validate:"gte=1"`
}

// DefaultOptions returns calibration defaults tuned for the reference
// display hardware.
func DefaultOptions() Options {
	return Options{
		GrayThreshold: 50,
		DPThreshold:   50,
		Reach:         7,
		Drop:          6,
		DPWindow:      6,
		MinHolePixels: 10,
		Digits:        6,
		ClusterRounds: 10,
	}
}

// Calibration is the derived state shared by every per-frame decode: the
// reference grids, the difference grid, the masks and the per-digit
// segment sample sets. It is replaced wholesale on recalibration and
// never mutated per frame, except for the sample sets which the refiner
// narrows over time.
type Calibration struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// LitRef and UnlitRef hold each pixel's grayscale value in the
	// all-lit and all-dark reference frames.
	LitRef   []int `json:"lit_ref"`
	UnlitRef []int `json:"unlit_ref"`

	// Diff holds |lit-unlit| per pixel; retained for the decimal-point
	// flood fill and the degraded classification path.
	Diff *region.Grid `json:"diff"`

	// Detectable marks pixels whose difference exceeds GrayThreshold.
	Detectable *region.Bitmap `json:"detectable"`

	// Background marks pixels reachable from the frame border through
	// non-detectable pixels; sampled every frame for ambient drift.
	Background *region.Bitmap `json:"background"`

	// Samples holds one SampleSet per digit position, left to right.
	Samples []SampleSet `json:"samples"`

	// Regions holds each digit's hole-derived bounding box, left to
	// right; zero for skipped positions. Diagnostic only.
	Regions []geometry.RectInt `json:"regions"`

	// Skipped lists digit positions whose hole cluster did not contain
	// exactly two members; their sample sets are empty.
	Skipped []int `json:"skipped,omitempty"`

	// Opts records the options the calibration was built with.
	Opts Options `json:"opts"`
}

// ErrHoleCount is returned when the two reference frames do not yield
// exactly two interior holes per digit.
var ErrHoleCount = errors.New("unexpected hole count")

// Calibrate builds a Calibration from two reference frames. The order
// of the frames does not matter: the brighter one (by summed R+G+B) is
// taken as the all-lit reference. On failure no partial state is
// returned.
func Calibrate(a, b *frame.Frame, opts Options) (*Calibration, error) {
	if err := frame.SameSize(a, b); err != nil {
		return nil, err
	}

	lit, unlit := a, b
	if unlit.Brightness() > lit.Brightness() {
		lit, unlit = unlit, lit
	}

	w, h := lit.Width, lit.Height
	cal := &Calibration{
		Width:      w,
		Height:     h,
		LitRef:     make([]int, w*h),
		UnlitRef:   make([]int, w*h),
		Diff:       region.NewGrid(w, h),
		Detectable: region.NewBitmap(w, h),
		Samples:    make([]SampleSet, opts.Digits),
		Opts:       opts,
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			on := lit.Gray(x, y)
			off := unlit.Gray(x, y)
			idx := y*w + x
			cal.LitRef[idx] = on
			cal.UnlitRef[idx] = off
			d := on - off
			if d < 0 {
				d = -d
			}
			cal.Diff.Set(x, y, d)
			if d > opts.GrayThreshold {
				cal.Detectable.Set(x, y, true)
			}
		}
	}

	// Flood from the corner through everything that never changes
	// brightness. What remains unmarked and non-detectable is enclosed
	// inside a digit: the holes.
	cal.Background = region.Grow(cal.Diff, func(_, x, y int, _ *region.Grid) bool {
		return !cal.Detectable.At(x, y)
	}, nil, image.Point{})

	holes := extractHoles(cal.Diff, cal.Detectable, cal.Background, opts.MinHolePixels)
	if want := 2 * opts.Digits; len(holes) != want {
		return nil, fmt.Errorf("%w: found %d interior holes, want %d", ErrHoleCount, len(holes), want)
	}

	groups := clusterByX(holes, opts.Digits, opts.ClusterRounds)
	cal.Regions = make([]geometry.RectInt, opts.Digits)
	for pos, grp := range groups {
		if len(grp) != 2 {
			cal.Skipped = append(cal.Skipped, pos)
			continue
		}
		upper, lower := grp[0], grp[1]
		if lower.Centroid.Y < upper.Centroid.Y {
			upper, lower = lower, upper
		}
		cal.Regions[pos] = upper.Bounds.Union(lower.Bounds)
		cal.Samples[pos] = sampleSegments(upper, lower, cal.Detectable, opts)
		cal.Samples[pos][SegDP] = sampleDecimalPoint(&cal.Samples[pos], cal.Diff, opts)
	}

	return cal, nil
}
