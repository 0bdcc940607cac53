package decode

import (
	"image"
	"testing"

	"sevenseg-reader/internal/calibrate"
	"sevenseg-reader/internal/frame"
	"sevenseg-reader/internal/region"
)

// singlePixelCal builds a 1x1 calibration with the given references.
func singlePixelCal(lit, unlit int) *calibrate.Calibration {
	diff := region.NewGrid(1, 1)
	d := lit - unlit
	if d < 0 {
		d = -d
	}
	diff.Set(0, 0, d)
	return &calibrate.Calibration{
		Width:    1,
		Height:   1,
		LitRef:   []int{lit},
		UnlitRef: []int{unlit},
		Diff:     diff,
	}
}

func TestClassifierAgainstReferences(t *testing.T) {
	cases := []struct {
		name   string
		gray   float64
		offset float64
		want   bool
	}{
		{"near lit", 210, 0, true},
		{"near unlit", 60, 0, false},
		{"midpoint favors lit", 125, 0, true},
		{"ambient pulls bright pixel down", 210, 100, false},
		{"ambient-corrected lit", 300, 100, true},
	}

	cal := singlePixelCal(200, 50)
	for _, tc := range cases {
		cls := NewClassifier(cal, tc.offset)
		if got := cls.LitGray(tc.gray, 0, 0); got != tc.want {
			t.Errorf("%s: LitGray(%v) with offset %v = %v, want %v",
				tc.name, tc.gray, tc.offset, got, tc.want)
		}
	}
}

func TestClassifierFlatPixelDoesNotDivideByZero(t *testing.T) {
	cal := singlePixelCal(100, 100)
	cls := NewClassifier(cal, 0)
	if !cls.LitGray(100, 0, 0) {
		t.Error("equidistant flat pixel should classify lit")
	}
}

func TestClassifierDegradedPathUsesDifferenceGrid(t *testing.T) {
	diff := region.NewGrid(1, 1)
	diff.Set(0, 0, 50)
	cal := &calibrate.Calibration{Width: 1, Height: 1, Diff: diff}

	cls := NewClassifier(cal, 0)
	if !cls.LitGray(100, 0, 0) {
		t.Error("gray above the difference value should classify lit")
	}
	if cls.LitGray(30, 0, 0) {
		t.Error("gray below the difference value should classify unlit")
	}
}

func TestRuneTable(t *testing.T) {
	cases := []struct {
		mask int
		want rune
	}{
		{63, '0'},
		{6, '1'},
		{91, '2'},
		{0, ' '},
		{127, '8'},
		{109, '5'},
		{115, 'P'},
		{84, 'n'},
		{1, Unknown}, // segment A alone is not a glyph
	}
	for _, tc := range cases {
		if got := Rune(tc.mask); got != tc.want {
			t.Errorf("Rune(%d) = %q, want %q", tc.mask, got, tc.want)
		}
	}
}

// displayCal builds a calibration where digit d's segment s samples the
// single pixel (d*10+s, 0), so a test frame can dial in any bitmask.
func displayCal(digits int) *calibrate.Calibration {
	w := digits * 10
	n := w
	litRef := make([]int, n)
	unlitRef := make([]int, n)
	diff := region.NewGrid(w, 1)
	for i := 0; i < n; i++ {
		litRef[i] = 200
		unlitRef[i] = 50
		diff.Values[i] = 150
	}

	cal := &calibrate.Calibration{
		Width:      w,
		Height:     1,
		LitRef:     litRef,
		UnlitRef:   unlitRef,
		Diff:       diff,
		Background: region.NewBitmap(w, 1),
		Samples:    make([]calibrate.SampleSet, digits),
		Opts:       calibrate.DefaultOptions(),
	}
	for d := 0; d < digits; d++ {
		for s := 0; s < calibrate.SegmentCount; s++ {
			cal.Samples[d][s] = []image.Point{{X: d*10 + s, Y: 0}}
		}
	}
	return cal
}

// paint renders a frame for displayCal where each digit shows the given
// bitmask, with bit 7 standing in for the decimal point.
func paint(cal *calibrate.Calibration, masks []int) *frame.Frame {
	f := frame.New(cal.Width, cal.Height)
	for i := 0; i < cal.Width; i++ {
		f.Pix[i*4], f.Pix[i*4+1], f.Pix[i*4+2], f.Pix[i*4+3] = 50, 50, 50, 255
	}
	for d, mask := range masks {
		for s := 0; s < calibrate.SegmentCount; s++ {
			if mask&(1<<s) == 0 {
				continue
			}
			i := (d*10 + s) * 4
			f.Pix[i], f.Pix[i+1], f.Pix[i+2] = 200, 200, 200
		}
	}
	return f
}

func TestDigitAssemblesBitmask(t *testing.T) {
	cal := displayCal(1)
	f := paint(cal, []int{91}) // '2'

	mask, point := Digit(f, &cal.Samples[0], NewClassifier(cal, 0))
	if mask != 91 {
		t.Errorf("mask = %d, want 91", mask)
	}
	if point {
		t.Error("decimal point should be unlit")
	}
}

func TestDigitDecimalPointSetsFlagNotMask(t *testing.T) {
	cal := displayCal(1)
	f := paint(cal, []int{6 | 1<<calibrate.SegDP})

	mask, point := Digit(f, &cal.Samples[0], NewClassifier(cal, 0))
	if mask != 6 {
		t.Errorf("mask = %d, want 6", mask)
	}
	if !point {
		t.Error("decimal point should be lit")
	}
}

func TestDigitVoteCountdown(t *testing.T) {
	cal := displayCal(1)
	// Give segment A four sample pixels at distinct coordinates.
	cal.Width = 40
	cal.Height = 1
	cal.LitRef = make([]int, 40)
	cal.UnlitRef = make([]int, 40)
	cal.Diff = region.NewGrid(40, 1)
	for i := 0; i < 40; i++ {
		cal.LitRef[i] = 200
		cal.UnlitRef[i] = 50
		cal.Diff.Values[i] = 150
	}
	cal.Samples[0] = calibrate.SampleSet{}
	cal.Samples[0][calibrate.SegA] = []image.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}

	light := func(lit int) *frame.Frame {
		f := frame.New(40, 1)
		for i := 0; i < 40; i++ {
			level := uint8(50)
			if i < lit {
				level = 200
			}
			f.Pix[i*4], f.Pix[i*4+1], f.Pix[i*4+2], f.Pix[i*4+3] = level, level, level, 255
		}
		return f
	}

	cls := NewClassifier(cal, 0)
	if mask, _ := Digit(light(2), &cal.Samples[0], cls); mask&1 == 0 {
		t.Error("half the samples lit should switch the segment on")
	}
	if mask, _ := Digit(light(1), &cal.Samples[0], cls); mask&1 != 0 {
		t.Error("a single lit sample out of four should leave the segment off")
	}
}

func TestDisplaysAppliesCollisionFixes(t *testing.T) {
	cal := displayCal(6)

	f := paint(cal, []int{109, 115 | 1<<calibrate.SegDP, 6, 63, 63, 63})
	if got := Displays(f, cal, NewClassifier(cal, 0)); got != "SP.1000" {
		t.Errorf("Displays = %q, want %q", got, "SP.1000")
	}

	f = paint(cal, []int{6, 84 | 1<<calibrate.SegDP, 0, 0, 0, 0})
	if got := Displays(f, cal, NewClassifier(cal, 0)); got != "In.    " {
		t.Errorf("Displays = %q, want %q", got, "In.    ")
	}
}

func TestFixCollisionsLeavesOtherValuesAlone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"5P.100", "SP.100"},
		{"1n.   ", "In.   "},
		{"5P1000", "5P1000"}, // no decimal point at index 2
		{"100000", "100000"},
		{"5P", "5P"},
	}
	for _, tc := range cases {
		if got := fixCollisions(tc.in); got != tc.want {
			t.Errorf("fixCollisions(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAmbientMeanOfBackgroundDrift(t *testing.T) {
	w, h := 40, 40
	cal := &calibrate.Calibration{
		Width:      w,
		Height:     h,
		LitRef:     make([]int, w*h),
		UnlitRef:   make([]int, w*h),
		Diff:       region.NewGrid(w, h),
		Background: region.NewBitmap(w, h),
	}
	for i := range cal.UnlitRef {
		cal.UnlitRef[i] = 50
		cal.Background.Bits[i] = true
	}

	f := frame.New(w, h)
	for i := 0; i < w*h; i++ {
		f.Pix[i*4], f.Pix[i*4+1], f.Pix[i*4+2], f.Pix[i*4+3] = 57, 57, 57, 255
	}

	if got := Ambient(f, cal); got != 7 {
		t.Errorf("Ambient = %v, want 7", got)
	}
}

func TestAmbientWithoutBackgroundIsZero(t *testing.T) {
	cal := displayCal(1)
	f := paint(cal, []int{0})
	if got := Ambient(f, cal); got != 0 {
		t.Errorf("Ambient = %v, want 0 when no background pixel is sampled", got)
	}
}

func TestRefineNarrowsToMajority(t *testing.T) {
	w := 10
	cal := &calibrate.Calibration{
		Width:    w,
		Height:   1,
		LitRef:   make([]int, w),
		UnlitRef: make([]int, w),
		Diff:     region.NewGrid(w, 1),
		Samples:  make([]calibrate.SampleSet, 1),
	}
	for i := 0; i < w; i++ {
		cal.LitRef[i] = 200
		cal.UnlitRef[i] = 50
	}
	pts := make([]image.Point, w)
	for i := range pts {
		pts[i] = image.Point{X: i, Y: 0}
	}
	cal.Samples[0][calibrate.SegA] = pts

	// 8 of 10 samples lit: the two unlit stragglers get dropped.
	f := frame.New(w, 1)
	for i := 0; i < w; i++ {
		level := uint8(200)
		if i >= 8 {
			level = 50
		}
		f.Pix[i*4], f.Pix[i*4+1], f.Pix[i*4+2], f.Pix[i*4+3] = level, level, level, 255
	}
	Refine(f, cal, NewClassifier(cal, 0))

	got := cal.Samples[0][calibrate.SegA]
	if len(got) != 8 {
		t.Fatalf("refined sample count = %d, want 8", len(got))
	}
	for _, p := range got {
		if p.X >= 8 {
			t.Errorf("unlit sample %v should have been dropped", p)
		}
	}
}

func TestRefineLeavesSplitVoteUntouched(t *testing.T) {
	w := 10
	cal := &calibrate.Calibration{
		Width:    w,
		Height:   1,
		LitRef:   make([]int, w),
		UnlitRef: make([]int, w),
		Diff:     region.NewGrid(w, 1),
		Samples:  make([]calibrate.SampleSet, 1),
	}
	for i := 0; i < w; i++ {
		cal.LitRef[i] = 200
		cal.UnlitRef[i] = 50
	}
	pts := make([]image.Point, w)
	for i := range pts {
		pts[i] = image.Point{X: i, Y: 0}
	}
	cal.Samples[0][calibrate.SegA] = pts

	f := frame.New(w, 1)
	for i := 0; i < w; i++ {
		level := uint8(200)
		if i >= 5 {
			level = 50
		}
		f.Pix[i*4], f.Pix[i*4+1], f.Pix[i*4+2], f.Pix[i*4+3] = level, level, level, 255
	}
	Refine(f, cal, NewClassifier(cal, 0))

	if len(cal.Samples[0][calibrate.SegA]) != w {
		t.Errorf("a 50/50 split must leave the sample set unchanged, got %d of %d",
			len(cal.Samples[0][calibrate.SegA]), w)
	}
}
