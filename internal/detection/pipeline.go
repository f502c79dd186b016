package detection

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/ironsheep/gridlines/internal/imaging"
)

// EdgeMap reduces img to the cleaned binary edge grid the accumulator
// votes on: grayscale, smoothing, edge extraction (or thinning), then
// morphological opening. The grid is smaller than img by the kernel
// offset on each side.
func EdgeMap(img image.Image, cfg Config, sink imaging.Sink) (*image.Gray, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sink = orNop(sink)

	gray, err := imaging.Grayscale(img, cfg.Gray)
	if err != nil {
		return nil, fmt.Errorf("grayscale: %w", err)
	}
	sink.Save("grayscale", gray)

	blurred, err := imaging.Smooth(gray, cfg.Kernel)
	if err != nil {
		return nil, fmt.Errorf("smooth: %w", err)
	}
	sink.Save("blurred", blurred)

	var edges *image.Gray
	switch cfg.EdgeMode {
	case EdgeThinning:
		var thin *imaging.GradientField
		edges, thin, err = imaging.ThinEdges(blurred, cfg.edgeParams(), cfg.Quantization)
		if err != nil {
			return nil, fmt.Errorf("thin edges: %w", err)
		}
		sink.Save("canny-edge", thin.Image())
		sink.Save("hysteresis-threshold", edges)
	default:
		var field *imaging.GradientField
		edges, field, err = imaging.ExtractEdges(blurred, cfg.edgeParams())
		if err != nil {
			return nil, fmt.Errorf("extract edges: %w", err)
		}
		sink.Save("gradient", field.Image())
		sink.Save("threshold-gradient", edges)
	}

	eroded, opened, err := imaging.Open(edges)
	if err != nil {
		return nil, fmt.Errorf("morphology: %w", err)
	}
	sink.Save("eroded", eroded)
	sink.Save("dilate", opened)
	return opened, nil
}

// FindLines votes the foreground of a binary grid into the accumulator
// and selects grid lines from it. Coordinates are in the grid's own space.
func FindLines(binary *image.Gray, cfg Config, sink imaging.Sink) (Lines, error) {
	if err := cfg.Validate(); err != nil {
		return Lines{}, err
	}
	sink = orNop(sink)

	start := time.Now()
	acc, err := Accumulate(binary)
	if err != nil {
		return Lines{}, fmt.Errorf("accumulate: %w", err)
	}
	sink.Save("graph", acc.Image())

	cands := acc.Candidates()
	sel := selectLines(cands, cfg.proximity(), cfg.CutoffFraction)
	lines := sel.Lines
	if cfg.Debug {
		log.Printf("Accumulated %d votes in %d cells (max radius %d) in %v; kept %d horizontal, %d vertical",
			acc.Total(), len(cands), acc.MaxRadius, time.Since(start),
			len(lines.Horizontal), len(lines.Vertical))
	}

	if _, nop := sink.(imaging.NopSink); !nop {
		c, err := imaging.ParseHexColor(cfg.LineColor)
		if err != nil {
			return Lines{}, err
		}
		sink.Save("hough-line-transform", drawSelection(binary, sel, c))
	}
	return lines, nil
}

// drawSelection overlays the selected lines on grid. Vertical lines are
// full columns; horizontal ones follow y = intercept + slope*x.
func drawSelection(grid image.Image, sel selection, c color.RGBA) *image.RGBA {
	out := imaging.DrawLines(grid, nil, sel.Vertical, imaging.OverlayOptions{Color: c})
	b := out.Bounds()
	for _, row := range sel.rows {
		m, y0 := row.Slope(), row.Intercept()
		for x := 0; x < b.Dx(); x++ {
			y := int(math.Round(y0 + m*float64(x)))
			if y >= 0 && y < b.Dy() {
				out.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
			}
		}
	}
	return out
}

// DetectLines runs the whole pipeline on img without resampling it.
// Smoothing trims the kernel offset from each border; that offset is
// added back so coordinates are in img's pixel space.
func DetectLines(img image.Image, cfg Config, sink imaging.Sink) (Lines, error) {
	start := time.Now()
	edges, err := EdgeMap(img, cfg, sink)
	if err != nil {
		return Lines{}, err
	}
	if cfg.Debug {
		log.Printf("Edge map %dx%d with %d foreground pixels in %v",
			edges.Bounds().Dx(), edges.Bounds().Dy(), imaging.CountWhite(edges), time.Since(start))
	}

	lines, err := FindLines(edges, cfg, sink)
	if err != nil {
		return Lines{}, err
	}
	return lines.Offset(cfg.Kernel.Offset()), nil
}

// LocateLines downscales img by cfg.Scale, detects lines and multiplies
// the coordinates back into img's resolution.
func LocateLines(img image.Image, cfg Config, sink imaging.Sink) (Lines, error) {
	if err := cfg.Validate(); err != nil {
		return Lines{}, err
	}
	small, err := imaging.Downscale(img, cfg.Scale)
	if err != nil {
		return Lines{}, fmt.Errorf("downscale: %w", err)
	}
	if cfg.Debug {
		log.Printf("Detecting lines on %dx%d (scale %d)", small.Bounds().Dx(), small.Bounds().Dy(), cfg.Scale)
	}

	lines, err := DetectLines(small, cfg, sink)
	if err != nil {
		return Lines{}, err
	}
	return lines.Scale(cfg.Scale), nil
}

func orNop(s imaging.Sink) imaging.Sink {
	if s == nil {
		return imaging.NopSink{}
	}
	return s
}
