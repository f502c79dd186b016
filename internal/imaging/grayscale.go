package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// GrayMode selects how the three color channels are combined into one
// intensity. The set is closed; ParseGrayMode lists every accepted name.
type GrayMode int

const (
	// GrayAverage is (R+G+B)/3.
	GrayAverage GrayMode = iota
	// GrayLuminosity is 0.21R + 0.72G + 0.07B, truncated.
	GrayLuminosity
	// GrayLightness is (max(R,G,B) + min(R,G,B)) / 2.
	GrayLightness
	// GrayRed passes the red channel through.
	GrayRed
	// GrayGreen passes the green channel through.
	GrayGreen
	// GrayBlue passes the blue channel through.
	GrayBlue
)

var grayModeNames = map[GrayMode]string{
	GrayAverage:    "average",
	GrayLuminosity: "luminosity",
	GrayLightness:  "lightness",
	GrayRed:        "red",
	GrayGreen:      "green",
	GrayBlue:       "blue",
}

func (m GrayMode) String() string {
	if name, ok := grayModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("GrayMode(%d)", int(m))
}

// Valid reports whether m is one of the named modes.
func (m GrayMode) Valid() bool {
	_, ok := grayModeNames[m]
	return ok
}

// ParseGrayMode maps a mode name (case-insensitive) to its GrayMode.
func ParseGrayMode(name string) (GrayMode, error) {
	for mode, n := range grayModeNames {
		if strings.EqualFold(n, name) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown gray mode %q (want average, luminosity, lightness, red, green or blue)", name)
}

// Combine reduces one 8-bit RGB triple to an intensity.
func (m GrayMode) Combine(r, g, b uint8) uint8 {
	ri, gi, bi := int(r), int(g), int(b)
	switch m {
	case GrayLuminosity:
		return uint8(0.21*float64(ri) + 0.72*float64(gi) + 0.07*float64(bi))
	case GrayLightness:
		return uint8((max(ri, gi, bi) + min(ri, gi, bi)) / 2)
	case GrayRed:
		return r
	case GrayGreen:
		return g
	case GrayBlue:
		return b
	default:
		return uint8((ri + gi + bi) / 3)
	}
}

// Grayscale maps a color image to a single-channel grid of the same size.
// Pixels are read non-premultiplied, so a translucent pixel keeps its
// channel values. The output origin is always (0,0).
func Grayscale(img image.Image, mode GrayMode) (*image.Gray, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	out := NewGrid(bounds.Dx(), bounds.Dy())

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			out.SetGray(x, y, color.Gray{Y: mode.Combine(c.R, c.G, c.B)})
		}
	}
	return out, nil
}
