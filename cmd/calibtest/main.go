// Command calibtest runs display calibration on a lit/unlit image pair
// and reports the detected geometry.
package main

import (
	"flag"
	"fmt"
	"os"

	"sevenseg-reader/internal/calibrate"
	"sevenseg-reader/internal/capture"
)

func main() {
	litPath := flag.String("lit", "", "Path to the all-segments-lit image (PNG, JPEG or TIFF)")
	unlitPath := flag.String("unlit", "", "Path to the all-segments-dark image")
	grayThreshold := flag.Int("gray-threshold", 50, "Detectability threshold (0-255)")
	dpThreshold := flag.Int("dp-threshold", 50, "Decimal point flood fill threshold (0-255)")
	out := flag.String("out", "", "Write the calibration JSON here on success")
	flag.Parse()

	if *litPath == "" || *unlitPath == "" {
		fmt.Println("Usage: calibtest -lit <path> -unlit <path> [-gray-threshold 50] [-out cal.json]")
		os.Exit(1)
	}

	lit, err := capture.LoadImage(*litPath, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load lit image: %v\n", err)
		os.Exit(1)
	}
	unlit, err := capture.LoadImage(*unlitPath, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load unlit image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %dx%d reference pair\n", lit.Width, lit.Height)

	opts := calibrate.DefaultOptions()
	opts.GrayThreshold = *grayThreshold
	opts.DPThreshold = *dpThreshold
	fmt.Printf("\nCalibration options:\n")
	fmt.Printf("  Gray threshold: %d\n", opts.GrayThreshold)
	fmt.Printf("  DP threshold:   %d  (window +-%d)\n", opts.DPThreshold, opts.DPWindow)
	fmt.Printf("  Probe offsets:  reach=%d drop=%d\n", opts.Reach, opts.Drop)
	fmt.Printf("  Digits:         %d\n", opts.Digits)

	cal, err := calibrate.Calibrate(lit, unlit, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Calibration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nDetectable pixels: %d\n", cal.Detectable.Count())
	fmt.Printf("Background pixels: %d\n", cal.Background.Count())

	fmt.Printf("\n%-6s %-16s %8s %8s %8s %8s %8s %8s %8s %8s\n",
		"digit", "region", "A", "B", "C", "D", "E", "F", "G", "DP")
	for i, set := range cal.Samples {
		r := cal.Regions[i]
		fmt.Printf("%-6d %-16s", i, fmt.Sprintf("(%d,%d) %dx%d", r.X, r.Y, r.Width, r.Height))
		for seg := 0; seg < calibrate.SegmentCount; seg++ {
			fmt.Printf(" %8d", len(set[seg]))
		}
		fmt.Println()
	}
	if len(cal.Skipped) > 0 {
		fmt.Printf("\nSkipped digit positions (malformed hole group): %v\n", cal.Skipped)
	}

	if *out != "" {
		if err := cal.Save(*out); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save calibration: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nCalibration written to %s\n", *out)
	}
}
