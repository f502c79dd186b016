package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/anthonynsimon/bild/clone"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultLineColor is the overlay color for detected lines.
const DefaultLineColor = "#FF0000"

// ParseHexColor parses "#RRGGBB" (or "RRGGBB") into an opaque color.
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) > 0 && hex[0] != '#' {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid line color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// OverlayOptions controls DrawLines.
type OverlayOptions struct {
	// Color of the drawn lines.
	Color color.RGBA
	// Labels prints each line's coordinate next to it.
	Labels bool
}

// DrawLines copies img and draws full-width rows at each y in horizontal
// and full-height columns at each x in vertical. Coordinates outside the
// image are skipped.
func DrawLines(img image.Image, horizontal, vertical []int, opts OverlayOptions) *image.RGBA {
	out := clone.AsRGBA(img)
	bounds := out.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	for _, y := range horizontal {
		if y < 0 || y >= height {
			continue
		}
		for x := 0; x < width; x++ {
			out.SetRGBA(bounds.Min.X+x, bounds.Min.Y+y, opts.Color)
		}
	}
	for _, x := range vertical {
		if x < 0 || x >= width {
			continue
		}
		for y := 0; y < height; y++ {
			out.SetRGBA(bounds.Min.X+x, bounds.Min.Y+y, opts.Color)
		}
	}

	if opts.Labels {
		fg := color.RGBA{255, 255, 255, 255}
		bg := color.RGBA{0, 0, 0, 180}
		for _, y := range horizontal {
			drawLabel(out, bounds.Min.X+2, bounds.Min.Y+y+2, strconv.Itoa(y), fg, bg)
		}
		for _, x := range vertical {
			drawLabel(out, bounds.Min.X+x+2, bounds.Min.Y+2, strconv.Itoa(x), fg, bg)
		}
	}
	return out
}

// drawLabel draws a digit string with a 3x5 pixel font on a translucent
// background box.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		'-': {"000", "000", "111", "000", "000"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(bounds) {
				img.Set(p.X, p.Y, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				p := image.Pt(cx+col, y+row)
				if pixel == '1' && p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}
