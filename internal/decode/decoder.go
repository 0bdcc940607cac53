package decode

import (
	"strings"

	"sevenseg-reader/internal/calibrate"
	"sevenseg-reader/internal/frame"
)

// Unknown is emitted for bitmasks the display vocabulary cannot form.
const Unknown = '?'

// charset maps 7-segment bitmasks (bit i = segment i lit, A=0..G=6) to
// the glyphs the target hardware renders. Masks not present here decode
// to Unknown.
var charset = map[int]rune{
	0:   ' ',
	2:   '\'',
	4:   ',',
	6:   '1',
	7:   '7',
	8:   '_',
	16:  'i',
	28:  'u',
	30:  'J',
	32:  '`',
	34:  '"',
	48:  'I',
	56:  'L',
	57:  'C',
	61:  'G',
	62:  'U',
	63:  '0',
	64:  '-',
	79:  '3',
	80:  'r',
	83:  '?',
	84:  'n',
	88:  'c',
	91:  '2',
	92:  'o',
	94:  'd',
	95:  'a',
	102: '4',
	103: '9',
	109: '5',
	110: 'y',
	111: '9',
	113: 'F',
	115: 'P',
	116: 'h',
	118: 'H',
	119: 'A',
	120: 't',
	121: 'E',
	123: 'e',
	124: 'b',
	125: '6',
	127: '8',
}

// Rune returns the character for a 7-bit segment mask.
func Rune(mask int) rune {
	if r, ok := charset[mask]; ok {
		return r
	}
	return Unknown
}

// Digit classifies one digit's segment samples against the frame and
// returns the assembled 7-bit mask plus whether the decimal point is
// lit. A segment is on once half of its sample pixels have classified
// lit; the countdown exits early so fully lit segments stop scanning as
// soon as the vote is decided.
func Digit(f *frame.Frame, samples *calibrate.SampleSet, cls Classifier) (mask int, point bool) {
	for seg := 0; seg < calibrate.SegmentCount; seg++ {
		pts := samples[seg]
		if len(pts) == 0 {
			continue
		}
		toLight := len(pts) / 2
		on := false
		for _, p := range pts {
			if !cls.Lit(f, p.X, p.Y) {
				continue
			}
			toLight--
			if toLight <= 0 {
				on = true
				break
			}
		}
		if !on {
			continue
		}
		if seg == calibrate.SegDP {
			point = true
		} else {
			mask |= 1 << seg
		}
	}
	return mask, point
}

// Displays decodes all digits of the frame into a string, one character
// per digit plus '.' after any digit whose decimal point is lit.
func Displays(f *frame.Frame, cal *calibrate.Calibration, cls Classifier) string {
	var sb strings.Builder
	for i := range cal.Samples {
		mask, point := Digit(f, &cal.Samples[i], cls)
		sb.WriteRune(Rune(mask))
		if point {
			sb.WriteByte('.')
		}
	}
	return fixCollisions(sb.String())
}

// fixCollisions disambiguates the two prefixes the hardware renders
// with glyphs that collide with digits: a leading "SP." (set point)
// decodes as "5P." and "In." (indoor) as "1n.".
func fixCollisions(s string) string {
	if len(s) < 3 || s[2] != '.' {
		return s
	}
	switch s[:3] {
	case "5P.":
		return "SP" + s[2:]
	case "1n.":
		return "In" + s[2:]
	}
	return s
}
