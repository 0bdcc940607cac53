package capture

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"sevenseg-reader/internal/frame"
)

// Video streams frames out of a video file by piping PNG-encoded frames
// from ffmpeg and decoding them one Snapshot at a time.
type Video struct {
	pipe   *io.PipeReader
	frames *bufio.Reader
	rotate bool
}

// OpenVideo starts ffmpeg extraction of the file. fps limits the frame
// rate (0 keeps the source rate) and maxWidth rescales wide sources
// inside ffmpeg before decoding.
func OpenVideo(path string, fps, maxWidth int, rotate bool) (*Video, error) {
	args := ffmpeg.KwArgs{
		"format": "image2pipe",
		"vcodec": "png",
	}
	if fps > 0 {
		args["r"] = strconv.Itoa(fps)
	}
	if maxWidth > 0 {
		args["vf"] = fmt.Sprintf("scale=%d:-1", maxWidth)
	}

	r, w := io.Pipe()
	stream := ffmpeg.Input(path).
		Output("pipe:1", args).
		WithOutput(w).
		WithErrorOutput(io.Discard)

	go func() {
		w.CloseWithError(stream.Run())
	}()

	return &Video{pipe: r, frames: bufio.NewReader(r), rotate: rotate}, nil
}

// Snapshot decodes the next frame; io.EOF once the file is exhausted.
func (v *Video) Snapshot() (*frame.Frame, error) {
	img, _, err := image.Decode(v.frames)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("decode video frame: %w", err)
	}
	f := frame.FromImage(img)
	if v.rotate {
		f.Rotate180()
	}
	return f, nil
}

// Close aborts extraction.
func (v *Video) Close() error {
	return v.pipe.Close()
}
