package reader

// Tracker debounces decoded display values across ticks. A value is
// reported changed the tick it first appears, and reported stable
// exactly once, after it has survived StableAfter further ticks
// unchanged. The match counter keeps growing past that point so the
// stable notification cannot re-fire until the value changes and
// returns.
type Tracker struct {
	StableAfter int

	last    string
	seen    bool
	matches int
}

// Observe feeds one decoded value and reports whether it changed and
// whether it just became stable.
func (t *Tracker) Observe(value string) (changed, stable bool) {
	if !t.seen || value != t.last {
		t.seen = true
		t.last = value
		t.matches = 0
		return true, false
	}
	t.matches++
	return false, t.matches == t.StableAfter
}

// Last returns the most recent value and whether one has been seen.
func (t *Tracker) Last() (string, bool) {
	return t.last, t.seen
}

// Reset forgets the tracked value, e.g. after recalibration.
func (t *Tracker) Reset() {
	t.last = ""
	t.seen = false
	t.matches = 0
}
