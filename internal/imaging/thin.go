package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
)

// Quantization selects how gradient orientations pick the two neighbors
// compared during non-maximum suppression.
type Quantization int

const (
	// QuantizeSectors bins angles into four 45-degree sectors centred on
	// 0, 45, 90 and 135 degrees.
	QuantizeSectors Quantization = iota

	// QuantizeLegacy reproduces the older thinner, whose sector tests were
	// joined with OR instead of AND. The first test then holds for every
	// angle, so every pixel is compared with the pixels directly above and
	// below it regardless of its orientation.
	QuantizeLegacy
)

func (q Quantization) String() string {
	switch q {
	case QuantizeSectors:
		return "sectors"
	case QuantizeLegacy:
		return "legacy"
	}
	return fmt.Sprintf("Quantization(%d)", int(q))
}

// Valid reports whether q is QuantizeSectors or QuantizeLegacy.
func (q Quantization) Valid() bool {
	return q == QuantizeSectors || q == QuantizeLegacy
}

// ParseQuantization maps "sectors" or "legacy" to its Quantization.
func ParseQuantization(name string) (Quantization, error) {
	switch strings.ToLower(name) {
	case "sectors":
		return QuantizeSectors, nil
	case "legacy":
		return QuantizeLegacy, nil
	}
	return 0, fmt.Errorf("unknown quantization %q (want sectors or legacy)", name)
}

// neighbors returns the offsets of the two pixels across the edge for an
// orientation in degrees.
func (q Quantization) neighbors(angle float64) (image.Point, image.Point) {
	if q == QuantizeLegacy {
		return image.Pt(0, 1), image.Pt(0, -1)
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return image.Pt(1, 0), image.Pt(-1, 0)
	case angle < 67.5:
		return image.Pt(1, 1), image.Pt(-1, -1)
	case angle < 112.5:
		return image.Pt(0, 1), image.Pt(0, -1)
	default:
		return image.Pt(-1, 1), image.Pt(1, -1)
	}
}

// SuppressNonMaxima keeps a magnitude only where it is at least as large as
// both neighbors selected by its orientation. The field must carry
// orientations. Border pixels stay zero.
func SuppressNonMaxima(f *GradientField, q Quantization) *GradientField {
	out := &GradientField{
		Rect:      f.Rect,
		Magnitude: make([]int, len(f.Magnitude)),
		Max:       f.Max,
	}
	region := ValidRegion(f.Rect, 1)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			mag := f.At(x, y)
			a, b := q.neighbors(f.AngleAt(x, y))
			if mag >= f.At(x+a.X, y+a.Y) && mag >= f.At(x+b.X, y+b.Y) {
				out.Magnitude[out.index(x, y)] = mag
			}
		}
	}
	return out
}

// HysteresisLevels returns high = round(alpha*max) and low = round(beta*high).
func HysteresisLevels(maxMagnitude int, alpha, beta float64) (high, low int) {
	high = int(math.Round(alpha * float64(maxMagnitude)))
	low = int(math.Round(beta * float64(high)))
	return high, low
}

// Hysteresis classifies magnitudes >= high as white and <= low as black.
// The remaining weak pixels are resolved once, in row-major order, against
// the grid being built: a weak pixel turns white if any of its 8 neighbors
// is white at that moment. A weak pixel promoted earlier in the scan
// therefore counts for later ones, so the result depends on scan order and
// is not a fixpoint.
func Hysteresis(f *GradientField, maxMagnitude int, alpha, beta float64) *image.Gray {
	high, low := HysteresisLevels(maxMagnitude, alpha, beta)
	out := image.NewGray(f.Rect)

	var weak []image.Point
	for y := f.Rect.Min.Y; y < f.Rect.Max.Y; y++ {
		for x := f.Rect.Min.X; x < f.Rect.Max.X; x++ {
			mag := f.At(x, y)
			switch {
			case mag <= low:
			case mag >= high:
				out.SetGray(x, y, color.Gray{Y: White})
			default:
				weak = append(weak, image.Pt(x, y))
			}
		}
	}

	for _, p := range weak {
		w := window(p.X, p.Y, f.Rect)
	scan:
		for ny := w.Min.Y; ny < w.Max.Y; ny++ {
			for nx := w.Min.X; nx < w.Max.X; nx++ {
				if (nx != p.X || ny != p.Y) && isWhite(out, nx, ny) {
					out.SetGray(p.X, p.Y, color.Gray{Y: White})
					break scan
				}
			}
		}
	}
	return out
}

// ThinEdges is the alternate edge path: gradient with orientation,
// non-maximum suppression, then hysteresis. It returns the suppressed field
// for diagnostics alongside the binary grid.
func ThinEdges(g *image.Gray, p EdgeParams, q Quantization) (*image.Gray, *GradientField, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	field, err := Gradient(g, p, true)
	if err != nil {
		return nil, nil, err
	}
	thin := SuppressNonMaxima(field, q)
	return Hysteresis(thin, field.Max, p.Alpha, p.Beta), thin, nil
}
