package calibrate

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes the calibration to a JSON file so a reader can restart
// without re-capturing reference frames.
func (c *Calibration) Save(path string) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal calibration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write calibration: %w", err)
	}
	return nil
}

// Load reads a calibration previously written by Save and checks it is
// internally consistent before returning it.
func Load(path string) (*Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration: %w", err)
	}
	var c Calibration
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse calibration: %w", err)
	}

	n := c.Width * c.Height
	if n <= 0 || len(c.LitRef) != n || len(c.UnlitRef) != n {
		return nil, fmt.Errorf("calibration %s: reference grids do not match %dx%d", path, c.Width, c.Height)
	}
	if c.Diff == nil || c.Detectable == nil || c.Background == nil ||
		len(c.Diff.Values) != n || len(c.Detectable.Bits) != n || len(c.Background.Bits) != n {
		return nil, fmt.Errorf("calibration %s: masks do not match %dx%d", path, c.Width, c.Height)
	}
	if len(c.Samples) != c.Opts.Digits || len(c.Regions) != c.Opts.Digits {
		return nil, fmt.Errorf("calibration %s: %d sample sets and %d regions for %d digits",
			path, len(c.Samples), len(c.Regions), c.Opts.Digits)
	}
	return &c, nil
}
