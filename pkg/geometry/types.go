// Package geometry provides basic geometric types used throughout the application.
package geometry

import "image"

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains returns true if the pixel coordinate is inside the rectangle.
func (r RectInt) Contains(p image.Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// MaxX returns the largest X coordinate covered by the rectangle.
func (r RectInt) MaxX() int {
	return r.X + r.Width - 1
}

// MaxY returns the largest Y coordinate covered by the rectangle.
func (r RectInt) MaxY() int {
	return r.Y + r.Height - 1
}

// Union returns the smallest rectangle covering both rectangles.
func (r RectInt) Union(other RectInt) RectInt {
	x, y := r.X, r.Y
	if other.X < x {
		x = other.X
	}
	if other.Y < y {
		y = other.Y
	}
	maxX, maxY := r.MaxX(), r.MaxY()
	if m := other.MaxX(); m > maxX {
		maxX = m
	}
	if m := other.MaxY(); m > maxY {
		maxY = m
	}
	return RectInt{X: x, Y: y, Width: maxX - x + 1, Height: maxY - y + 1}
}

// Centroid computes the centroid (average position) of a set of pixel coordinates.
func Centroid(points []image.Point) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += float64(p.X)
		sumY += float64(p.Y)
	}
	n := float64(len(points))
	return Point2D{X: sumX / n, Y: sumY / n}
}

// BoundingBox computes the axis-aligned bounding box of a set of pixel coordinates.
func BoundingBox(points []image.Point) RectInt {
	if len(points) == 0 {
		return RectInt{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return RectInt{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}
