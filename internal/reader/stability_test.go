package reader

import "testing"

func TestTrackerChangedAndStable(t *testing.T) {
	tr := Tracker{StableAfter: 3}

	var changed, stable []string
	for _, v := range []string{"A", "A", "A", "A", "B"} {
		c, s := tr.Observe(v)
		if c {
			changed = append(changed, v)
		}
		if s {
			stable = append(stable, v)
		}
	}

	if len(changed) != 2 || changed[0] != "A" || changed[1] != "B" {
		t.Errorf("changed notifications = %v, want [A B]", changed)
	}
	if len(stable) != 1 || stable[0] != "A" {
		t.Errorf("stable notifications = %v, want [A]", stable)
	}
}

func TestTrackerStableFiresOnlyOnce(t *testing.T) {
	tr := Tracker{StableAfter: 2}

	fired := 0
	for i := 0; i < 10; i++ {
		if _, s := tr.Observe("X"); s {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable fired %d times for an unchanging value, want 1", fired)
	}
}

func TestTrackerRefiresAfterValueReturns(t *testing.T) {
	tr := Tracker{StableAfter: 1}

	fired := 0
	for _, v := range []string{"A", "A", "B", "A", "A"} {
		if _, s := tr.Observe(v); s {
			fired++
		}
	}
	if fired != 2 {
		t.Errorf("stable fired %d times, want 2 (once per settled run)", fired)
	}
}

func TestTrackerFirstObservationIsChange(t *testing.T) {
	tr := Tracker{StableAfter: 3}

	c, s := tr.Observe("")
	if !c || s {
		t.Errorf("first observation: changed=%v stable=%v, want changed only", c, s)
	}
	if v, seen := tr.Last(); !seen || v != "" {
		t.Errorf("Last() = %q, %v after observing the empty value", v, seen)
	}
}

func TestTrackerReset(t *testing.T) {
	tr := Tracker{StableAfter: 1}
	tr.Observe("A")
	tr.Observe("A")
	tr.Reset()

	if _, seen := tr.Last(); seen {
		t.Error("Reset should forget the tracked value")
	}
	if c, _ := tr.Observe("A"); !c {
		t.Error("the first observation after Reset should report a change")
	}
}
