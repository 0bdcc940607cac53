// Package region provides dense grid types and a generic 8-connected
// region grower used for background, hole and decimal-point detection.
package region

import "image"

// Bitmap is a dense width x height boolean grid.
type Bitmap struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bits   []bool `json:"bits"`
}

// NewBitmap creates a cleared bitmap.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// In reports whether the coordinate is inside the bitmap.
func (b *Bitmap) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// At returns the bit at a coordinate.
func (b *Bitmap) At(x, y int) bool {
	return b.Bits[y*b.Width+x]
}

// Set writes the bit at a coordinate.
func (b *Bitmap) Set(x, y int, v bool) {
	b.Bits[y*b.Width+x] = v
}

// Count returns the number of set bits.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Bits {
		if v {
			n++
		}
	}
	return n
}

// Grid is a dense width x height grid of integer values (grayscale
// levels or lit/unlit differences).
type Grid struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Values []int `json:"values"`
}

// NewGrid creates a zeroed grid.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Values: make([]int, width*height)}
}

// In reports whether the coordinate is inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the value at a coordinate.
func (g *Grid) At(x, y int) int {
	return g.Values[y*g.Width+x]
}

// Set writes the value at a coordinate.
func (g *Grid) Set(x, y, v int) {
	g.Values[y*g.Width+x] = v
}

// Predicate decides whether a grid cell belongs to the region being grown.
type Predicate func(value, x, y int, g *Grid) bool

// eight-connected neighbor offsets
var neighbors = [8]image.Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Grow performs a breadth-first 8-connected expansion over the grid.
// Starting from the seed coordinates (default (0,0) when none are
// given), each dequeued coordinate has its eight neighbors examined; a
// neighbor that is in bounds, not yet visited and accepted by the
// predicate is marked in the output bitmap and enqueued. Seeds
// themselves are only starting points and are not marked.
//
// When out is non-nil the region is painted into it, so multiple grows
// can accumulate into one bitmap. With a nil predicate no traversal
// happens at all: the grid is converted to a bitmap by truthiness.
//
// Traversal order only affects the order in which equal candidates are
// reached; membership is purely predicate-driven, so the resulting set
// does not depend on seed ordering.
func Grow(g *Grid, include Predicate, out *Bitmap, seeds ...image.Point) *Bitmap {
	out, _ = grow(g, include, out, seeds, false)
	return out
}

// Collect is Grow, but also returns the coordinates marked during this
// call in visit order. Used where the caller needs the member pixels of
// a single component rather than just the bitmap.
func Collect(g *Grid, include Predicate, out *Bitmap, seeds ...image.Point) (*Bitmap, []image.Point) {
	return grow(g, include, out, seeds, true)
}

func grow(g *Grid, include Predicate, out *Bitmap, seeds []image.Point, track bool) (*Bitmap, []image.Point) {
	if out == nil {
		out = NewBitmap(g.Width, g.Height)
	}

	if include == nil {
		for i, v := range g.Values {
			if v != 0 {
				out.Bits[i] = true
			}
		}
		return out, nil
	}

	if len(seeds) == 0 {
		seeds = []image.Point{{0, 0}}
	}

	visited := make([]bool, g.Width*g.Height)
	queue := make([]image.Point, 0, len(seeds))
	for _, s := range seeds {
		if !g.In(s.X, s.Y) {
			continue
		}
		visited[s.Y*g.Width+s.X] = true
		queue = append(queue, s)
	}

	var members []image.Point
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range neighbors {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if !g.In(nx, ny) {
				continue
			}
			idx := ny*g.Width + nx
			if visited[idx] {
				continue
			}
			visited[idx] = true
			if !include(g.Values[idx], nx, ny, g) {
				continue
			}
			out.Bits[idx] = true
			if track {
				members = append(members, image.Point{X: nx, Y: ny})
			}
			queue = append(queue, image.Point{X: nx, Y: ny})
		}
	}
	return out, members
}
