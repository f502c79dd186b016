package detection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/ironsheep/gridlines/internal/imaging"
)

// Vote cutoff presets. A candidate survives selection when its votes are
// at least the top vote count times the cutoff.
const (
	// CutoffLenient is used by the board extractor.
	CutoffLenient = 1.0 / 8
	// CutoffStrict keeps only strong lines.
	CutoffStrict = 1.0 / 3
)

// DefaultProximityRadius is the merge window at full resolution, in pixels.
const DefaultProximityRadius = 60

// EdgeMode picks the binarization path between smoothing and morphology.
type EdgeMode int

const (
	// EdgeThreshold binarizes the gradient with the product threshold.
	EdgeThreshold EdgeMode = iota
	// EdgeThinning runs non-maximum suppression and hysteresis instead.
	EdgeThinning
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeThreshold:
		return "threshold"
	case EdgeThinning:
		return "thinning"
	}
	return fmt.Sprintf("EdgeMode(%d)", int(m))
}

// ParseEdgeMode maps "threshold" or "thinning" to its EdgeMode.
func ParseEdgeMode(name string) (EdgeMode, error) {
	switch strings.ToLower(name) {
	case "threshold":
		return EdgeThreshold, nil
	case "thinning", "canny":
		return EdgeThinning, nil
	}
	return 0, fmt.Errorf("unknown edge mode %q (want threshold or thinning)", name)
}

// Config holds every tunable of the line finder.
type Config struct {
	// Scale is the integer downscale factor applied before detection.
	// Coordinates come back multiplied by it from LocateLines, and the
	// proximity window is divided by it.
	Scale int

	Gray     imaging.GrayMode
	Kernel   imaging.Kernel
	Operator imaging.Operator

	// Alpha and Beta are the relative edge thresholds, both in (0,1).
	Alpha float64
	Beta  float64

	// BrightnessCutoff zeroes gradients next to intensities above it.
	// Negative disables the exclusion.
	BrightnessCutoff int

	EdgeMode     EdgeMode
	Quantization imaging.Quantization

	// ProximityRadius is the full-resolution merge window in pixels.
	ProximityRadius int

	// CutoffFraction discards candidates with fewer than this fraction of
	// the top vote count. Must be in (0,1].
	CutoffFraction float64

	// LineColor is the hex color used to draw accepted lines in the
	// hough-line-transform diagnostic.
	LineColor string

	// Debug logs stage timings and vote counts.
	Debug bool
}

// DefaultConfig returns the board extractor's settings: no downscale,
// average grayscale, 3x3 smoothing, Sobel with alpha 0.3 and beta 0.5,
// the threshold edge path, a 60 pixel merge window and the lenient cutoff.
func DefaultConfig() Config {
	return Config{
		Scale:            1,
		Gray:             imaging.GrayAverage,
		Kernel:           imaging.Kernel3x3,
		Operator:         imaging.Sobel,
		Alpha:            imaging.DefaultAlpha,
		Beta:             imaging.DefaultBeta,
		BrightnessCutoff: imaging.DefaultBrightnessCutoff,
		EdgeMode:         EdgeThreshold,
		Quantization:     imaging.QuantizeSectors,
		ProximityRadius:  DefaultProximityRadius,
		CutoffFraction:   CutoffLenient,
		LineColor:        imaging.DefaultLineColor,
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Scale < 1 {
		return fmt.Errorf("%w: scale must be at least 1, got %d", ErrInvalidConfig, c.Scale)
	}
	if !c.Gray.Valid() {
		return fmt.Errorf("%w: unknown gray mode %d", ErrInvalidConfig, int(c.Gray))
	}
	if err := c.Kernel.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.edgeParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.EdgeMode != EdgeThreshold && c.EdgeMode != EdgeThinning {
		return fmt.Errorf("%w: unknown edge mode %d", ErrInvalidConfig, int(c.EdgeMode))
	}
	if !c.Quantization.Valid() {
		return fmt.Errorf("%w: unknown quantization %d", ErrInvalidConfig, int(c.Quantization))
	}
	if c.ProximityRadius < 0 {
		return fmt.Errorf("%w: proximity radius must not be negative, got %d", ErrInvalidConfig, c.ProximityRadius)
	}
	if !(c.CutoffFraction > 0 && c.CutoffFraction <= 1) {
		return fmt.Errorf("%w: cutoff must be in (0,1], got %v", ErrInvalidConfig, c.CutoffFraction)
	}
	if _, err := imaging.ParseHexColor(c.LineColor); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) edgeParams() imaging.EdgeParams {
	return imaging.EdgeParams{
		Operator:         c.Operator,
		Alpha:            c.Alpha,
		Beta:             c.Beta,
		BrightnessCutoff: c.BrightnessCutoff,
	}
}

// proximity is the merge window in downscaled pixels.
func (c Config) proximity() int {
	return c.ProximityRadius / c.Scale
}

// configAttrs mirrors Config with plain names so it can be decoded from
// JSON objects and tool arguments. Nil and empty fields keep defaults.
type configAttrs struct {
	Scale            *int     `mapstructure:"scale"`
	Gray             string   `mapstructure:"gray"`
	Kernel           *int     `mapstructure:"kernel"`
	Operator         string   `mapstructure:"operator"`
	Alpha            *float64 `mapstructure:"alpha"`
	Beta             *float64 `mapstructure:"beta"`
	BrightnessCutoff *int     `mapstructure:"brightness_cutoff"`
	Mode             string   `mapstructure:"mode"`
	Quantization     string   `mapstructure:"quantization"`
	Proximity        *int     `mapstructure:"proximity"`
	Cutoff           string   `mapstructure:"cutoff"`
	LineColor        string   `mapstructure:"line_color"`
	Debug            *bool    `mapstructure:"debug"`
}

// ConfigFromMap overlays attrs onto base and validates the result.
// Numbers may arrive as strings or floats; cutoff also accepts the preset
// names "lenient" and "strict". Unknown keys are an error.
func ConfigFromMap(base Config, attrs map[string]interface{}) (Config, error) {
	var a configAttrs
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &a,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return base, err
	}
	if err := dec.Decode(attrs); err != nil {
		return base, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := base
	if a.Scale != nil {
		cfg.Scale = *a.Scale
	}
	if a.Gray != "" {
		if cfg.Gray, err = imaging.ParseGrayMode(a.Gray); err != nil {
			return base, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if a.Kernel != nil {
		if cfg.Kernel, err = imaging.KernelBySize(*a.Kernel); err != nil {
			return base, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if a.Operator != "" {
		if cfg.Operator, err = imaging.ParseOperator(a.Operator); err != nil {
			return base, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if a.Alpha != nil {
		cfg.Alpha = *a.Alpha
	}
	if a.Beta != nil {
		cfg.Beta = *a.Beta
	}
	if a.BrightnessCutoff != nil {
		cfg.BrightnessCutoff = *a.BrightnessCutoff
	}
	if a.Mode != "" {
		if cfg.EdgeMode, err = ParseEdgeMode(a.Mode); err != nil {
			return base, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if a.Quantization != "" {
		if cfg.Quantization, err = imaging.ParseQuantization(a.Quantization); err != nil {
			return base, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if a.Proximity != nil {
		cfg.ProximityRadius = *a.Proximity
	}
	if a.Cutoff != "" {
		if cfg.CutoffFraction, err = ParseCutoff(a.Cutoff); err != nil {
			return base, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if a.LineColor != "" {
		cfg.LineColor = a.LineColor
	}
	if a.Debug != nil {
		cfg.Debug = *a.Debug
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// ParseCutoff accepts "lenient", "strict" or a decimal fraction.
func ParseCutoff(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "lenient":
		return CutoffLenient, nil
	case "strict":
		return CutoffStrict, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cutoff %q (want lenient, strict or a fraction)", s)
	}
	return f, nil
}
