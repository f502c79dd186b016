package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
)

// ErrInvalidThreshold is returned when a relative threshold is outside (0,1).
var ErrInvalidThreshold = errors.New("imaging: threshold must be in (0,1)")

// Operator is a 3x3 derivative kernel. It is applied as given for the
// horizontal component and transposed for the vertical component.
type Operator [3][3]int

var (
	// Sobel is the classic 1-2-1 weighted derivative.
	Sobel = Operator{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	// Scharr has better rotational symmetry than Sobel.
	Scharr = Operator{
		{-3, 0, 3},
		{-10, 0, 10},
		{-3, 0, 3},
	}
)

// ParseOperator maps "sobel" or "scharr" to its operator.
func ParseOperator(name string) (Operator, error) {
	switch strings.ToLower(name) {
	case "sobel":
		return Sobel, nil
	case "scharr":
		return Scharr, nil
	}
	return Operator{}, fmt.Errorf("unknown edge operator %q (want sobel or scharr)", name)
}

// Default edge parameters.
const (
	DefaultAlpha = 0.3
	DefaultBeta  = 0.5

	// DefaultBrightnessCutoff suppresses gradients next to bright printed
	// symbols on an otherwise dark, uniform background.
	DefaultBrightnessCutoff = 100
)

// EdgeParams controls gradient computation and thresholding.
type EdgeParams struct {
	Operator Operator
	Alpha    float64
	Beta     float64

	// BrightnessCutoff zeroes the gradient of any pixel whose 3x3 window
	// holds an intensity above it. Negative disables the exclusion.
	BrightnessCutoff int
}

// DefaultEdgeParams returns Sobel with alpha 0.3, beta 0.5 and the default
// brightness cutoff.
func DefaultEdgeParams() EdgeParams {
	return EdgeParams{
		Operator:         Sobel,
		Alpha:            DefaultAlpha,
		Beta:             DefaultBeta,
		BrightnessCutoff: DefaultBrightnessCutoff,
	}
}

// Validate checks that alpha and beta are strictly between 0 and 1.
func (p EdgeParams) Validate() error {
	if !(p.Alpha > 0 && p.Alpha < 1) {
		return fmt.Errorf("%w: alpha=%v", ErrInvalidThreshold, p.Alpha)
	}
	if !(p.Beta > 0 && p.Beta < 1) {
		return fmt.Errorf("%w: beta=%v", ErrInvalidThreshold, p.Beta)
	}
	return nil
}

// GradientField holds per-pixel gradient magnitudes and, optionally,
// orientations in degrees within [0,180). Border pixels are always zero.
type GradientField struct {
	Rect        image.Rectangle
	Magnitude   []int
	Orientation []float64 // nil unless requested
	Max         int
}

func (f *GradientField) index(x, y int) int {
	return (y-f.Rect.Min.Y)*f.Rect.Dx() + (x - f.Rect.Min.X)
}

// At returns the magnitude at (x, y), or 0 outside the field.
func (f *GradientField) At(x, y int) int {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return 0
	}
	return f.Magnitude[f.index(x, y)]
}

// AngleAt returns the orientation at (x, y), or 0 when none was computed.
func (f *GradientField) AngleAt(x, y int) float64 {
	if f.Orientation == nil || !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return 0
	}
	return f.Orientation[f.index(x, y)]
}

// Image renders the magnitudes as a grid, saturating at 255.
func (f *GradientField) Image() *image.Gray {
	out := image.NewGray(f.Rect)
	for y := f.Rect.Min.Y; y < f.Rect.Max.Y; y++ {
		for x := f.Rect.Min.X; x < f.Rect.Max.X; x++ {
			out.SetGray(x, y, clampGray(f.At(x, y)))
		}
	}
	return out
}

// Gradient computes the gradient field of g over its valid region
// (a one-pixel frame stays zero). The running maximum is tracked during
// the same scan.
func Gradient(g *image.Gray, p EdgeParams, withOrientation bool) (*GradientField, error) {
	if g == nil {
		return nil, ErrNilImage
	}
	if err := checkImage(g); err != nil {
		return nil, err
	}

	bounds := g.Bounds()
	field := &GradientField{
		Rect:      bounds,
		Magnitude: make([]int, bounds.Dx()*bounds.Dy()),
	}
	if withOrientation {
		field.Orientation = make([]float64, len(field.Magnitude))
	}

	region := ValidRegion(bounds, 1)
	op := p.Operator
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			gx, gy, excluded := 0, 0, false
			for dy := -1; dy <= 1 && !excluded; dy++ {
				for dx := -1; dx <= 1; dx++ {
					v := int(g.GrayAt(x+dx, y+dy).Y)
					if p.BrightnessCutoff >= 0 && v > p.BrightnessCutoff {
						excluded = true
						break
					}
					gx += op[dy+1][dx+1] * v
					gy += op[dx+1][dy+1] * v
				}
			}
			if excluded {
				continue
			}

			mag := int(math.Round(math.Sqrt(float64(gx*gx + gy*gy))))
			i := field.index(x, y)
			field.Magnitude[i] = mag
			if mag > field.Max {
				field.Max = mag
			}
			if withOrientation {
				field.Orientation[i] = orientation(gx, gy)
			}
		}
	}
	return field, nil
}

// orientation folds atan2 into [0,180) degrees.
func orientation(gx, gy int) float64 {
	angle := math.Atan2(float64(gy), float64(gx)) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	if angle >= 180 {
		angle -= 180
	}
	return angle
}

// ProductThreshold is the single cut used by Threshold: alpha and beta are
// multiplied rather than applied as separate high and low levels.
func ProductThreshold(maxMagnitude int, alpha, beta float64) int {
	return int(math.Round(beta * alpha * float64(maxMagnitude)))
}

// Threshold binarizes a gradient field: a pixel is white iff its magnitude
// exceeds round(beta*alpha*max). An all-zero field yields an all-black grid.
func Threshold(f *GradientField, alpha, beta float64) *image.Gray {
	cut := ProductThreshold(f.Max, alpha, beta)
	out := image.NewGray(f.Rect)
	for y := f.Rect.Min.Y; y < f.Rect.Max.Y; y++ {
		for x := f.Rect.Min.X; x < f.Rect.Max.X; x++ {
			if f.At(x, y) > cut {
				out.SetGray(x, y, color.Gray{Y: White})
			}
		}
	}
	return out
}

// ExtractEdges runs Gradient then Threshold. The field is returned as well
// so callers can keep it for diagnostics.
func ExtractEdges(g *image.Gray, p EdgeParams) (*image.Gray, *GradientField, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	field, err := Gradient(g, p, false)
	if err != nil {
		return nil, nil, err
	}
	return Threshold(field, p.Alpha, p.Beta), field, nil
}
