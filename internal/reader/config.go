package reader

import (
	"time"

	"github.com/go-playground/validator/v10"

	"sevenseg-reader/internal/calibrate"
)

var validate = validator.New()

// Config holds the reader's tunables. Calibration options are nested so
// the whole surface validates as one struct.
type Config struct {
	Calibration calibrate.Options

	// Rotate180 flips snapshots for displays mounted upside down.
	Rotate180 bool

	// Interval is the cadence of the periodic decode loop.
	Interval time.Duration `validate:"gt=0"`

	// StableTicks is how many unchanged repeats (after the introducing
	// tick) a value needs before the stable notification fires.
	StableTicks int `validate:"gte=1"`

	// RefineEvery runs a sample-refinement pass every N ticks of the
	// decode loop; 0 disables it.
	RefineEvery int `validate:"gte=0"`

	// AutoCalibrate triggers calibration automatically once the second
	// calibration frame is captured.
	AutoCalibrate bool
}

// DefaultConfig returns the standard reader configuration.
func DefaultConfig() Config {
	return Config{
		Calibration:   calibrate.DefaultOptions(),
		Interval:      100 * time.Millisecond,
		StableTicks:   3,
		RefineEvery:   0,
		AutoCalibrate: true,
	}
}

// SetGrayThreshold updates the detectability threshold. Invalid values
// are rejected and the prior value kept; the return reports whether the
// write was accepted. Takes effect on the next calibration.
func (r *Reader) SetGrayThreshold(v int) bool {
	if validate.Var(v, "gte=0,lte=255") != nil {
		return false
	}
	r.cfg.Calibration.GrayThreshold = v
	return true
}

// SetDPThreshold updates the decimal-point flood-fill threshold, with
// the same write semantics as SetGrayThreshold.
func (r *Reader) SetDPThreshold(v int) bool {
	if validate.Var(v, "gte=0,lte=255") != nil {
		return false
	}
	r.cfg.Calibration.DPThreshold = v
	return true
}

// SetRotate180 toggles snapshot rotation.
func (r *Reader) SetRotate180(v bool) {
	r.cfg.Rotate180 = v
}

// Config returns a copy of the current configuration.
func (r *Reader) Config() Config {
	return r.cfg
}
