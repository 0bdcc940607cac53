package capture

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"sevenseg-reader/internal/frame"
)

// Camera captures frames from a local video device via OpenCV.
type Camera struct {
	cap      *gocv.VideoCapture
	mat      gocv.Mat
	rotate   bool
	maxWidth int
}

// OpenCamera opens a capture device. A missing or busy device is a
// setup error: it fails here, at construction, rather than degrading.
func OpenCamera(device int, maxWidth int, rotate bool) (*Camera, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	return &Camera{cap: cap, mat: gocv.NewMat(), rotate: rotate, maxWidth: maxWidth}, nil
}

// Snapshot reads one frame from the device.
func (c *Camera) Snapshot() (*frame.Frame, error) {
	if ok := c.cap.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, errors.New("camera returned no frame")
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert camera frame: %w", err)
	}
	f := frame.FromImage(Downscale(img, c.maxWidth))
	if c.rotate {
		f.Rotate180()
	}
	return f, nil
}

// Close releases the device.
func (c *Camera) Close() error {
	c.mat.Close()
	return c.cap.Close()
}
