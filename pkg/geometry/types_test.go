package geometry

import (
	"image"
	"testing"
)

func TestRectIntContains(t *testing.T) {
	r := RectInt{X: 2, Y: 3, Width: 4, Height: 2}

	cases := []struct {
		p    image.Point
		want bool
	}{
		{image.Point{X: 2, Y: 3}, true},
		{image.Point{X: 5, Y: 4}, true}, // MaxX, MaxY corner
		{image.Point{X: 6, Y: 4}, false},
		{image.Point{X: 5, Y: 5}, false},
		{image.Point{X: 1, Y: 3}, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.p); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
	if r.MaxX() != 5 || r.MaxY() != 4 {
		t.Errorf("MaxX/MaxY = %d/%d, want 5/4", r.MaxX(), r.MaxY())
	}
}

func TestRectIntUnion(t *testing.T) {
	a := RectInt{X: 2, Y: 3, Width: 4, Height: 2}
	b := RectInt{X: 5, Y: 1, Width: 3, Height: 3}

	got := a.Union(b)
	want := RectInt{X: 2, Y: 1, Width: 6, Height: 4}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := a.Union(a); got != a {
		t.Errorf("self union = %+v, want %+v", got, a)
	}
}

func TestCentroid(t *testing.T) {
	pts := []image.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 3}}
	c := Centroid(pts)
	if c.X != 1 || c.Y != 1 {
		t.Errorf("Centroid = %+v, want (1,1)", c)
	}
	if z := Centroid(nil); z != (Point2D{}) {
		t.Errorf("empty centroid = %+v, want zero", z)
	}
}

func TestBoundingBox(t *testing.T) {
	pts := []image.Point{{X: 4, Y: 7}, {X: 2, Y: 9}, {X: 3, Y: 6}}
	got := BoundingBox(pts)
	want := RectInt{X: 2, Y: 6, Width: 3, Height: 4}
	if got != want {
		t.Errorf("BoundingBox = %+v, want %+v", got, want)
	}
}
