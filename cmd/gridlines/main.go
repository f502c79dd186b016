// Command gridlines finds the horizontal and vertical grid lines of a board
// photo and prints their pixel coordinates.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/gridlines/internal/detection"
	"github.com/ironsheep/gridlines/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// output is the -json result.
type output struct {
	detection.Lines
	SquareSize int `json:"square_size,omitempty"`
}

// run parses args, detects lines and reports them. It returns the process
// exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gridlines", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: gridlines [flags] <image>")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment variables:")
		fmt.Fprintln(stderr, "  GRIDLINES_LOG_LEVEL=debug    Enable debug logging")
	}

	// Detector flags are only applied when given, on top of -config.
	fs.Int("scale", 1, "integer downscale factor before detection")
	fs.Int("kernel", 3, "Gaussian kernel size: 3, 5 or 7")
	fs.String("gray", "average", "grayscale mode: average, luminosity, lightness, red, green, blue")
	fs.String("operator", "sobel", "edge operator: sobel or scharr")
	fs.Float64("alpha", imaging.DefaultAlpha, "relative edge threshold in (0,1)")
	fs.Float64("beta", imaging.DefaultBeta, "second relative edge threshold in (0,1)")
	fs.Int("brightness", imaging.DefaultBrightnessCutoff, "ignore gradients next to intensities above this; negative disables")
	fs.String("mode", "threshold", "edge path: threshold or thinning")
	fs.String("quantization", "sectors", "orientation handling for -mode thinning: sectors or legacy")
	fs.String("cutoff", "lenient", "vote cutoff: lenient (1/8), strict (1/3) or a fraction")
	fs.Int("proximity", detection.DefaultProximityRadius, "merge window in full-resolution pixels")

	configPath := fs.String("config", "", "JSON file of detector settings")
	outDir := fs.String("out", "", "directory for output.png with the lines drawn")
	save := fs.Bool("save", false, "also write every intermediate stage to -out")
	lineColor := fs.String("color", imaging.DefaultLineColor, "overlay line color")
	labels := fs.Bool("labels", false, "label overlay lines with their coordinates")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	debug := fs.Bool("debug", false, "log stage timings and vote counts")
	version := fs.Bool("version", false, "print version information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *version {
		fmt.Fprintf(stdout, "gridlines %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if *save && *outDir == "" {
		fmt.Fprintln(stderr, "-save requires -out")
		return 2
	}

	cfg, err := buildConfig(fs, *configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 2
	}
	if *debug || os.Getenv("GRIDLINES_LOG_LEVEL") == "debug" {
		cfg.Debug = true
	}
	overlayColor, err := imaging.ParseHexColor(*lineColor)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid color: %v\n", err)
		return 2
	}

	path := fs.Arg(0)
	img, err := imaging.NewImageCache().Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading image: %v\n", err)
		return 1
	}

	var dir *imaging.DirSink
	var sink imaging.Sink = imaging.NopSink{}
	if *outDir != "" {
		dir = imaging.NewDirSink(*outDir)
		if *save {
			sink = dir
		}
	}

	lines, err := detection.LocateLines(img, cfg, sink)
	if err != nil {
		fmt.Fprintf(stderr, "Error detecting lines: %v\n", err)
		return 1
	}
	size, sizeErr := detection.SquareSize(lines)

	if *asJSON {
		res := output{Lines: lines}
		if sizeErr == nil {
			res.SquareSize = size
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(stderr, "Error writing result: %v\n", err)
			return 1
		}
	} else {
		fmt.Fprintf(stdout, "Image: %s (%dx%d)\n", path, img.Bounds().Dx(), img.Bounds().Dy())
		fmt.Fprintf(stdout, "Horizontal lines (y): %v\n", lines.Horizontal)
		fmt.Fprintf(stdout, "Vertical lines (x):   %v\n", lines.Vertical)
		if sizeErr == nil {
			fmt.Fprintf(stdout, "Square size: %d\n", size)
		} else {
			fmt.Fprintf(stdout, "Square size: unknown (%v)\n", sizeErr)
		}
	}

	if dir != nil {
		dir.Save("output", imaging.DrawLines(img, lines.Horizontal, lines.Vertical,
			imaging.OverlayOptions{Color: overlayColor, Labels: *labels}))
		if err := dir.Err(); err != nil {
			fmt.Fprintf(stderr, "Error writing images: %v\n", err)
			return 1
		}
	}
	return 0
}

// buildConfig starts from the defaults, applies the -config file and then
// every detector flag given explicitly on the command line.
func buildConfig(fs *flag.FlagSet, configPath string) (detection.Config, error) {
	attrs := map[string]interface{}{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return detection.Config{}, err
		}
		if err := json.Unmarshal(data, &attrs); err != nil {
			return detection.Config{}, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	keys := map[string]string{"brightness": "brightness_cutoff"}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale", "kernel", "gray", "operator", "alpha", "beta", "brightness",
			"mode", "quantization", "cutoff", "proximity":
			key := f.Name
			if k, ok := keys[key]; ok {
				key = k
			}
			attrs[key] = f.Value.String()
		}
	})
	return detection.ConfigFromMap(detection.DefaultConfig(), attrs)
}
