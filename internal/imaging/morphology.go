package imaging

import (
	"image"
	"image/color"
)

// Erode turns a pixel white only when it and all 8 neighbors are white.
// The one-pixel frame has no full window and stays black.
func Erode(g *image.Gray) (*image.Gray, error) {
	return morph(g, func(w image.Rectangle) bool {
		for y := w.Min.Y; y < w.Max.Y; y++ {
			for x := w.Min.X; x < w.Max.X; x++ {
				if !isWhite(g, x, y) {
					return false
				}
			}
		}
		return true
	})
}

// Dilate turns a pixel white when it or any of its 8 neighbors is white.
// The one-pixel frame stays black.
func Dilate(g *image.Gray) (*image.Gray, error) {
	return morph(g, func(w image.Rectangle) bool {
		for y := w.Min.Y; y < w.Max.Y; y++ {
			for x := w.Min.X; x < w.Max.X; x++ {
				if isWhite(g, x, y) {
					return true
				}
			}
		}
		return false
	})
}

// Open erodes then dilates, removing specks narrower than three pixels
// while keeping contiguous edges. Both intermediate grids are returned.
func Open(g *image.Gray) (eroded, opened *image.Gray, err error) {
	if eroded, err = Erode(g); err != nil {
		return nil, nil, err
	}
	if opened, err = Dilate(eroded); err != nil {
		return nil, nil, err
	}
	return eroded, opened, nil
}

func morph(g *image.Gray, keep func(w image.Rectangle) bool) (*image.Gray, error) {
	if err := checkImage(g); err != nil {
		return nil, err
	}
	bounds := g.Bounds()
	out := image.NewGray(bounds)
	region := ValidRegion(bounds, 1)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if keep(window(x, y, bounds)) {
				out.SetGray(x, y, color.Gray{Y: White})
			}
		}
	}
	return out, nil
}
