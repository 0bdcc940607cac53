// Package reader owns the per-instance state of one display reader:
// pending calibration frames, the calibration aggregate, and the
// debounced decode loop.
package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"sevenseg-reader/internal/calibrate"
	"sevenseg-reader/internal/capture"
	"sevenseg-reader/internal/decode"
	"sevenseg-reader/internal/frame"
)

// Listener receives decode notifications. Both methods are called
// synchronously from the tick that produced them.
type Listener interface {
	// DisplayChanged fires whenever the decoded text differs from the
	// previous tick.
	DisplayChanged(value string)

	// DisplayStable fires once when the same text has persisted across
	// enough consecutive ticks.
	DisplayStable(value string)
}

// ErrNotCalibrated is returned by operations that need calibration state.
var ErrNotCalibrated = errors.New("reader is not calibrated")

// Reader decodes one six-digit display from a frame source. It is not
// safe for concurrent use: calibration and ticks are expected to run
// from a single goroutine.
type Reader struct {
	cfg      Config
	log      logrus.FieldLogger
	source   capture.Source
	listener Listener

	pending []*frame.Frame
	cal     *calibrate.Calibration
	tracker Tracker
}

// New builds a reader. A missing frame source or invalid configuration
// is a setup error: it fails here rather than degrading later.
func New(source capture.Source, listener Listener, log logrus.FieldLogger, cfg Config) (*Reader, error) {
	if source == nil {
		return nil, errors.New("reader needs a frame source")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid reader config: %w", err)
	}
	return &Reader{
		cfg:      cfg,
		log:      log,
		source:   source,
		listener: listener,
		tracker:  Tracker{StableAfter: cfg.StableTicks},
	}, nil
}

// Calibrated reports whether decode ticks can run.
func (r *Reader) Calibrated() bool {
	return r.cal != nil
}

// Calibration exposes the current calibration aggregate, nil before the
// first successful calibration.
func (r *Reader) Calibration() *calibrate.Calibration {
	return r.cal
}

// UseCalibration installs a previously persisted calibration, replacing
// all derived state atomically.
func (r *Reader) UseCalibration(cal *calibrate.Calibration) {
	r.cal = cal
	r.pending = nil
	r.tracker.Reset()
}

// CaptureCalibrationImage snapshots the source and stores the frame as
// one of the two calibration references; only the two most recent
// captures are kept. Once the second frame arrives, calibration runs
// automatically unless AutoCalibrate is off.
func (r *Reader) CaptureCalibrationImage() error {
	f, err := r.snapshot()
	if err != nil {
		return fmt.Errorf("capture calibration image: %w", err)
	}
	r.pending = append(r.pending, f)
	if len(r.pending) > 2 {
		r.pending = r.pending[len(r.pending)-2:]
	}
	r.log.WithField("pending", len(r.pending)).Debug("calibration image captured")

	if len(r.pending) >= 2 && r.cfg.AutoCalibrate {
		r.AttemptCalibration()
	}
	return nil
}

// AttemptCalibration runs the calibration engine over the two pending
// frames. On failure every derived state is cleared and the pending
// frames are dropped, leaving the reader ready for a fresh pair.
func (r *Reader) AttemptCalibration() bool {
	if len(r.pending) != 2 {
		r.log.WithField("pending", len(r.pending)).Warn("calibration needs exactly two captured frames")
		return false
	}

	cal, err := calibrate.Calibrate(r.pending[0], r.pending[1], r.cfg.Calibration)
	r.pending = nil
	if err != nil {
		r.cal = nil
		r.tracker.Reset()
		r.log.WithError(err).Warn("calibration failed")
		return false
	}

	r.cal = cal
	r.tracker.Reset()
	for _, pos := range cal.Skipped {
		r.log.WithField("digit", pos).Warn("digit group malformed, leaving its samples empty")
	}
	r.log.WithFields(logrus.Fields{
		"size":       fmt.Sprintf("%dx%d", cal.Width, cal.Height),
		"detectable": cal.Detectable.Count(),
		"background": cal.Background.Count(),
	}).Info("calibration succeeded")
	return true
}

// ResetCalibration clears all derived state; decoding stays disarmed
// until a new calibration succeeds.
func (r *Reader) ResetCalibration() {
	r.cal = nil
	r.pending = nil
	r.tracker.Reset()
}

// ReadDisplays runs one decode tick: snapshot, ambient estimation,
// per-segment classification, character decode, and stability tracking.
func (r *Reader) ReadDisplays() (string, error) {
	if r.cal == nil {
		return "", ErrNotCalibrated
	}
	f, err := r.snapshot()
	if err != nil {
		return "", fmt.Errorf("read displays: %w", err)
	}
	if err := r.checkFrameSize(f); err != nil {
		return "", fmt.Errorf("read displays: %w", err)
	}

	cls := decode.NewClassifier(r.cal, decode.Ambient(f, r.cal))
	value := decode.Displays(f, r.cal, cls)

	changed, stable := r.tracker.Observe(value)
	if changed && r.listener != nil {
		r.listener.DisplayChanged(value)
	}
	if stable && r.listener != nil {
		r.listener.DisplayStable(value)
	}
	return value, nil
}

// Refine runs one sample-refinement pass against a fresh snapshot.
func (r *Reader) Refine() error {
	if r.cal == nil {
		return ErrNotCalibrated
	}
	f, err := r.snapshot()
	if err != nil {
		return fmt.Errorf("refine samples: %w", err)
	}
	if err := r.checkFrameSize(f); err != nil {
		return fmt.Errorf("refine samples: %w", err)
	}
	decode.Refine(f, r.cal, decode.NewClassifier(r.cal, decode.Ambient(f, r.cal)))
	return nil
}

// checkFrameSize rejects frames that do not match the calibration grid.
// The decoders index the frame with calibration coordinates, so a
// mismatched source (resized camera, wrong video file) must fail the
// tick instead of reading out of bounds.
func (r *Reader) checkFrameSize(f *frame.Frame) error {
	if f.Width != r.cal.Width || f.Height != r.cal.Height {
		return fmt.Errorf("frame %dx%d does not match calibration %dx%d",
			f.Width, f.Height, r.cal.Width, r.cal.Height)
	}
	return nil
}

// Run executes the periodic decode loop until the context is cancelled
// or the source is exhausted. The reader must already be calibrated;
// per-tick errors other than end-of-source are logged and the loop
// continues.
func (r *Reader) Run(ctx context.Context) error {
	if r.cal == nil {
		return ErrNotCalibrated
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.ReadDisplays(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				r.log.WithError(err).Warn("decode tick failed")
				continue
			}
			tick++
			if r.cfg.RefineEvery > 0 && tick%r.cfg.RefineEvery == 0 {
				if err := r.Refine(); err != nil {
					r.log.WithError(err).Warn("refine pass failed")
				}
			}
		}
	}
}

func (r *Reader) snapshot() (*frame.Frame, error) {
	f, err := r.source.Snapshot()
	if err != nil {
		return nil, err
	}
	if r.cfg.Rotate180 {
		f.Rotate180()
	}
	return f, nil
}
