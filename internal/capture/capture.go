// Package capture provides frame sources: a live camera, a video file
// decoded through ffmpeg, and still image files for offline testing.
package capture

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"sevenseg-reader/internal/frame"
)

// Source delivers owned frame snapshots. Sources are not safe for
// concurrent use; the reader is the only caller.
type Source interface {
	// Snapshot captures the current frame. Finite sources return io.EOF
	// once exhausted.
	Snapshot() (*frame.Frame, error)
	Close() error
}

// Downscale returns the image scaled so its width is at most maxWidth,
// preserving aspect ratio. Images already narrow enough (or a maxWidth
// of zero) pass through untouched.
func Downscale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
