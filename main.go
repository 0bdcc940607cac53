// Command sevenseg-reader decodes a six-digit seven-segment display
// from a camera or video file and logs the stabilized values.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"sevenseg-reader/internal/calibrate"
	"sevenseg-reader/internal/capture"
	"sevenseg-reader/internal/reader"
	"sevenseg-reader/internal/version"
	"sevenseg-reader/pkg/log"
)

func main() {
	camera := flag.Int("camera", 0, "Capture device index")
	video := flag.String("video", "", "Read frames from a video file instead of a camera")
	fps := flag.Int("fps", 10, "Frame rate when reading from a video file")
	maxWidth := flag.Int("max-width", 0, "Downscale frames wider than this (0 = keep native size)")
	litPath := flag.String("lit", "", "All-segments-lit calibration image")
	unlitPath := flag.String("unlit", "", "All-segments-dark calibration image")
	calPath := flag.String("calibration", "", "Calibration JSON to load if present, and to save after calibrating")
	calDelay := flag.Duration("calibration-delay", 3*time.Second, "Delay between the two live calibration captures")
	interval := flag.Duration("interval", 100*time.Millisecond, "Decode tick interval")
	grayThreshold := flag.Int("gray-threshold", 50, "Lit/unlit difference for a pixel to count as detectable (0-255)")
	dpThreshold := flag.Int("dp-threshold", 50, "Decimal point flood fill threshold (0-255)")
	rotate := flag.Bool("rotate180", false, "Rotate frames 180 degrees")
	refineEvery := flag.Int("refine-every", 50, "Refine segment samples every N ticks (0 = off)")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	_ = godotenv.Load()
	logger := log.New()

	cfg := reader.DefaultConfig()
	cfg.Interval = *interval
	cfg.Rotate180 = *rotate
	cfg.RefineEvery = *refineEvery
	cfg.Calibration.GrayThreshold = *grayThreshold
	cfg.Calibration.DPThreshold = *dpThreshold

	var (
		source capture.Source
		err    error
	)
	if *video != "" {
		source, err = capture.OpenVideo(*video, *fps, *maxWidth, false)
	} else {
		source, err = capture.OpenCamera(*camera, *maxWidth, false)
	}
	if err != nil {
		logger.Fatalf("Failed to open frame source: %v", err)
	}
	defer source.Close()

	r, err := reader.New(source, &logListener{log: logger}, logger, cfg)
	if err != nil {
		logger.Fatalf("Failed to create reader: %v", err)
	}

	if !setUpCalibration(r, logger, *calPath, *litPath, *unlitPath, *calDelay, *maxWidth, cfg.Calibration) {
		os.Exit(1)
	}
	if *calPath != "" {
		if err := r.Calibration().Save(*calPath); err != nil {
			logger.WithError(err).Warn("could not persist calibration")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.WithField("interval", interval.String()).Info("reading displays")
	if err := r.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalf("Reader stopped: %v", err)
	}
}

// setUpCalibration tries, in order: a persisted calibration file, an
// image pair given on the command line, and finally two live captures
// separated by a delay (toggle the display's lamp test in between).
// Reference images are downscaled with the same maxWidth as the live
// source so the calibration grid matches the decoded frames.
func setUpCalibration(r *reader.Reader, logger *logrus.Logger, calPath, litPath, unlitPath string, delay time.Duration, maxWidth int, opts calibrate.Options) bool {
	if calPath != "" {
		if cal, err := calibrate.Load(calPath); err == nil {
			r.UseCalibration(cal)
			logger.WithField("path", calPath).Info("loaded persisted calibration")
			return true
		}
	}

	if litPath != "" && unlitPath != "" {
		lit, err := capture.LoadImage(litPath, maxWidth)
		if err != nil {
			logger.WithError(err).Error("could not load lit reference")
			return false
		}
		unlit, err := capture.LoadImage(unlitPath, maxWidth)
		if err != nil {
			logger.WithError(err).Error("could not load unlit reference")
			return false
		}
		cal, err := calibrate.Calibrate(lit, unlit, opts)
		if err != nil {
			logger.WithError(err).Error("calibration from image pair failed")
			return false
		}
		r.UseCalibration(cal)
		return true
	}

	logger.Infof("capturing calibration frames; toggle the display within %s", delay)
	if err := r.CaptureCalibrationImage(); err != nil {
		logger.WithError(err).Error("first calibration capture failed")
		return false
	}
	time.Sleep(delay)
	if err := r.CaptureCalibrationImage(); err != nil {
		logger.WithError(err).Error("second calibration capture failed")
		return false
	}
	return r.Calibrated()
}

// logListener logs decode notifications.
type logListener struct {
	log *logrus.Logger
}

func (l *logListener) DisplayChanged(value string) {
	l.log.WithField("value", value).Debug("display changed")
}

func (l *logListener) DisplayStable(value string) {
	l.log.WithField("value", value).Info("display stable")
}
