package calibrate

import (
	"image"

	"sevenseg-reader/internal/region"
	"sevenseg-reader/pkg/geometry"
)

// Hole is a connected group of pixels that are neither detectable nor
// background: an enclosed dark region inside a lit glyph outline.
type Hole struct {
	Points   []image.Point
	Centroid geometry.Point2D
	Bounds   geometry.RectInt
}

// extractHoles scans the grid for pixels that are neither detectable
// nor background and grows each unclaimed one into a component.
// Components at or below the noise floor are discarded.
func extractHoles(diff *region.Grid, detectable, background *region.Bitmap, minPixels int) []Hole {
	claimed := region.NewBitmap(diff.Width, diff.Height)

	include := func(_, x, y int, _ *region.Grid) bool {
		return !detectable.At(x, y) && !background.At(x, y) && !claimed.At(x, y)
	}

	var holes []Hole
	for y := 0; y < diff.Height; y++ {
		for x := 0; x < diff.Width; x++ {
			if detectable.At(x, y) || background.At(x, y) || claimed.At(x, y) {
				continue
			}
			seed := image.Point{X: x, Y: y}
			claimed.Set(x, y, true)
			_, grown := region.Collect(diff, include, claimed, seed)
			pts := append([]image.Point{seed}, grown...)
			if len(pts) <= minPixels {
				continue
			}
			holes = append(holes, Hole{
				Points:   pts,
				Centroid: geometry.Centroid(pts),
				Bounds:   geometry.BoundingBox(pts),
			})
		}
	}
	return holes
}
