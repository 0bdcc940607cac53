package capture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/tiff"

	"sevenseg-reader/internal/frame"
)

// Stills serves frames from a list of image files, in order. Intended
// for the diagnostic CLIs and tests rather than live reading.
type Stills struct {
	paths    []string
	next     int
	rotate   bool
	maxWidth int
}

// OpenStills creates a source over the given image files.
func OpenStills(paths []string, maxWidth int, rotate bool) *Stills {
	return &Stills{paths: paths, maxWidth: maxWidth, rotate: rotate}
}

// Snapshot loads the next file; io.EOF once all files are consumed.
func (s *Stills) Snapshot() (*frame.Frame, error) {
	if s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]
	s.next++

	f, err := LoadImage(path, s.maxWidth)
	if err != nil {
		return nil, err
	}
	if s.rotate {
		f.Rotate180()
	}
	return f, nil
}

// Close is a no-op for still files.
func (s *Stills) Close() error {
	return nil
}

// LoadImage decodes a PNG, JPEG or TIFF file into a frame, downscaling
// to maxWidth when set.
func LoadImage(path string, maxWidth int) (*frame.Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer fh.Close()

	img, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return frame.FromImage(Downscale(img, maxWidth)), nil
}
