package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidScale is returned for scale factors below 1.
var ErrInvalidScale = errors.New("imaging: scale factor must be at least 1")

// Downscale shrinks img by an integer factor using bicubic (Catmull-Rom)
// resampling. The new size is the original size divided by factor, rounded
// down. A factor of 1 returns img unchanged.
func Downscale(img image.Image, factor int) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if factor < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidScale, factor)
	}
	if factor == 1 {
		return img, nil
	}

	b := img.Bounds()
	w, h := b.Dx()/factor, b.Dy()/factor
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %dx%d image cannot be reduced by %d",
			ErrImageTooSmall, b.Dx(), b.Dy(), factor)
	}
	return imaging.Resize(img, w, h, imaging.CatmullRom), nil
}
