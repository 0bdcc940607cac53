// Command decodetest calibrates from a lit/unlit image pair and then
// decodes one or more frame images, printing per-digit bitmasks.
package main

import (
	"flag"
	"fmt"
	"os"

	"sevenseg-reader/internal/calibrate"
	"sevenseg-reader/internal/capture"
	"sevenseg-reader/internal/decode"
)

func main() {
	litPath := flag.String("lit", "", "Path to the all-segments-lit image")
	unlitPath := flag.String("unlit", "", "Path to the all-segments-dark image")
	calPath := flag.String("calibration", "", "Load calibration JSON instead of an image pair")
	grayThreshold := flag.Int("gray-threshold", 50, "Detectability threshold (0-255)")
	flag.Parse()

	if *calPath == "" && (*litPath == "" || *unlitPath == "") || flag.NArg() == 0 {
		fmt.Println("Usage: decodetest (-lit <path> -unlit <path> | -calibration cal.json) <frame>...")
		os.Exit(1)
	}

	var (
		cal *calibrate.Calibration
		err error
	)
	if *calPath != "" {
		cal, err = calibrate.Load(*calPath)
	} else {
		opts := calibrate.DefaultOptions()
		opts.GrayThreshold = *grayThreshold
		litFrame, lerr := capture.LoadImage(*litPath, 0)
		if lerr != nil {
			fmt.Fprintf(os.Stderr, "Failed to load lit image: %v\n", lerr)
			os.Exit(1)
		}
		unlitFrame, uerr := capture.LoadImage(*unlitPath, 0)
		if uerr != nil {
			fmt.Fprintf(os.Stderr, "Failed to load unlit image: %v\n", uerr)
			os.Exit(1)
		}
		cal, err = calibrate.Calibrate(litFrame, unlitFrame, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Calibration failed: %v\n", err)
		os.Exit(1)
	}

	for _, path := range flag.Args() {
		f, err := capture.LoadImage(path, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load frame %s: %v\n", path, err)
			os.Exit(1)
		}

		offset := decode.Ambient(f, cal)
		cls := decode.NewClassifier(cal, offset)

		fmt.Printf("%s (ambient %+.1f)\n", path, offset)
		fmt.Printf("  %-6s %9s %5s %6s\n", "digit", "bitmask", "char", "point")
		for i := range cal.Samples {
			mask, point := decode.Digit(f, &cal.Samples[i], cls)
			fmt.Printf("  %-6d %9b %5c %6v\n", i, mask, decode.Rune(mask), point)
		}
		fmt.Printf("  value: %q\n", decode.Displays(f, cal, cls))
	}
}
