package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"reflect"
)

// Intensity levels used by binary grids.
const (
	Black uint8 = 0
	White uint8 = 255
)

var (
	// ErrNilImage is returned when a stage receives no grid at all.
	ErrNilImage = errors.New("imaging: image is nil")
	// ErrEmptyImage is returned for grids with a non-positive width or height.
	ErrEmptyImage = errors.New("imaging: image must have positive width and height")
	// ErrImageTooSmall is returned when a grid cannot hold a single full window.
	ErrImageTooSmall = errors.New("imaging: image smaller than the operator window")
)

// NewGrid allocates a black single-channel grid with its origin at (0,0).
func NewGrid(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// ValidRegion returns the part of bounds where a (2*margin+1)-wide window
// fits entirely inside the grid. Passes that read a neighborhood iterate
// only this rectangle, so they never index outside the grid.
//
// The result is empty when the grid is too small for the window.
func ValidRegion(bounds image.Rectangle, margin int) image.Rectangle {
	if bounds.Dx() <= 2*margin || bounds.Dy() <= 2*margin {
		return image.Rectangle{}
	}
	return bounds.Inset(margin)
}

// window returns the 3x3 neighborhood of (x, y) clipped to bounds.
func window(x, y int, bounds image.Rectangle) image.Rectangle {
	return image.Rect(x-1, y-1, x+2, y+2).Intersect(bounds)
}

// checkImage validates the common preconditions of every stage. A nil
// pointer stored in img counts as no image.
func checkImage(img image.Image) error {
	if img == nil {
		return ErrNilImage
	}
	if v := reflect.ValueOf(img); v.Kind() == reflect.Pointer && v.IsNil() {
		return ErrNilImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrEmptyImage, b.Dx(), b.Dy())
	}
	return nil
}

// isWhite reports whether a binary grid pixel is foreground.
func isWhite(g *image.Gray, x, y int) bool {
	return g.GrayAt(x, y).Y == White
}

// CountWhite returns the number of foreground pixels in a binary grid.
func CountWhite(g *image.Gray) int {
	n := 0
	b := g.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isWhite(g, x, y) {
				n++
			}
		}
	}
	return n
}

// clampGray saturates an integer level into the 8-bit range.
func clampGray(v int) color.Gray {
	return color.Gray{Y: uint8(clamp(v, 0, 255))}
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
