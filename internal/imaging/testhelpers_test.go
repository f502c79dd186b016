package imaging

import (
	"image"
	"image/color"
)

// grayGrid builds a width x height grid where each pixel is f(x, y).
func grayGrid(width, height int, f func(x, y int) uint8) *image.Gray {
	g := NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.SetGray(x, y, color.Gray{Y: f(x, y)})
		}
	}
	return g
}

// stepGrid is dark (0) left of column edge and level from it onward.
func stepGrid(width, height, edge int, level uint8) *image.Gray {
	return grayGrid(width, height, func(x, _ int) uint8 {
		if x >= edge {
			return level
		}
		return 0
	})
}

// binaryRect returns a black grid with the rectangle r filled white.
func binaryRect(width, height int, r image.Rectangle) *image.Gray {
	return grayGrid(width, height, func(x, y int) uint8 {
		if image.Pt(x, y).In(r) {
			return White
		}
		return Black
	})
}

// whitePoints lists foreground pixels in row-major order.
func whitePoints(g *image.Gray) []image.Point {
	var pts []image.Point
	b := g.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isWhite(g, x, y) {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

// cloneGray returns an independent copy of g.
func cloneGray(g *image.Gray) *image.Gray {
	c := image.NewGray(g.Bounds())
	copy(c.Pix, g.Pix)
	return c
}
