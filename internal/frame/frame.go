// Package frame holds owned RGBA frame snapshots and grayscale sampling.
package frame

import (
	"fmt"
	"image"
)

// Frame is an owned snapshot of one video frame. Pixels are stored as
// RGBA, four bytes per pixel, row-major. A Frame is never mutated after
// capture except by Rotate180, which callers apply before handing the
// frame to any decoder.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// New creates a zeroed frame of the given size.
func New(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies an image.Image into an owned Frame.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	f := New(w, h)

	// Fast path for the common decode result types.
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 && bounds.Min == (image.Point{}) {
		copy(f.Pix, rgba.Pix)
		return f
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 4
			f.Pix[i] = uint8(r >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(b >> 8)
			f.Pix[i+3] = uint8(a >> 8)
		}
	}
	return f
}

// In reports whether the coordinate is inside the frame.
func (f *Frame) In(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// RGB returns the color channels at a coordinate.
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 4
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// Gray returns the grayscale value at a coordinate, defined as the mean
// of the R, G and B channels.
func (f *Frame) Gray(x, y int) int {
	i := (y*f.Width + x) * 4
	return (int(f.Pix[i]) + int(f.Pix[i+1]) + int(f.Pix[i+2])) / 3
}

// Brightness returns the non-normalized sum of R+G+B over all pixels.
// It is used to order calibration frames: the brighter frame is the one
// with every segment lit.
func (f *Frame) Brightness() int64 {
	var sum int64
	for i := 0; i < len(f.Pix); i += 4 {
		sum += int64(f.Pix[i]) + int64(f.Pix[i+1]) + int64(f.Pix[i+2])
	}
	return sum
}

// Rotate180 rotates the frame in place by 180 degrees.
func (f *Frame) Rotate180() {
	n := f.Width * f.Height
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		for c := 0; c < 4; c++ {
			f.Pix[i*4+c], f.Pix[j*4+c] = f.Pix[j*4+c], f.Pix[i*4+c]
		}
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := New(f.Width, f.Height)
	copy(c.Pix, f.Pix)
	return c
}

// SameSize returns an error unless both frames have identical dimensions.
func SameSize(a, b *Frame) error {
	if a.Width != b.Width || a.Height != b.Height {
		return fmt.Errorf("frame size mismatch: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	return nil
}
