package imaging

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidKernel is returned for kernels that cannot be used for smoothing.
var ErrInvalidKernel = errors.New("imaging: invalid kernel")

// Kernel is an odd-sized square matrix of non-negative integer weights.
// Its element sum is the normalization divisor.
type Kernel [][]int

// Gaussian smoothing presets.
var (
	// Kernel3x3 sums to 16.
	Kernel3x3 = Kernel{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}

	// Kernel5x5 approximates sigma 1.4 and sums to 273.
	Kernel5x5 = Kernel{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}

	// Kernel7x7 sums to 1003.
	Kernel7x7 = Kernel{
		{0, 0, 1, 2, 1, 0, 0},
		{0, 3, 13, 22, 13, 3, 0},
		{1, 13, 59, 97, 59, 13, 1},
		{2, 22, 97, 159, 97, 22, 2},
		{1, 13, 59, 97, 59, 13, 1},
		{0, 3, 13, 22, 13, 3, 0},
		{0, 0, 1, 2, 1, 0, 0},
	}
)

// KernelBySize returns the preset for size 3, 5 or 7.
func KernelBySize(size int) (Kernel, error) {
	switch size {
	case 3:
		return Kernel3x3, nil
	case 5:
		return Kernel5x5, nil
	case 7:
		return Kernel7x7, nil
	}
	return nil, fmt.Errorf("%w: no preset of size %d (want 3, 5 or 7)", ErrInvalidKernel, size)
}

// Size is the kernel's width (and height).
func (k Kernel) Size() int { return len(k) }

// Offset is the number of border pixels lost on each side when smoothing.
func (k Kernel) Offset() int { return len(k) / 2 }

// Sum returns the total of all coefficients.
func (k Kernel) Sum() int {
	sum := 0
	for _, row := range k {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// Validate checks that the kernel is square, odd, at least 3x3, has no
// negative weights and a positive sum.
func (k Kernel) Validate() error {
	n := len(k)
	if n < 3 || n%2 == 0 {
		return fmt.Errorf("%w: size %d must be odd and at least 3", ErrInvalidKernel, n)
	}
	for i, row := range k {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidKernel, i, len(row), n)
		}
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("%w: negative weight %d at (%d,%d)", ErrInvalidKernel, v, i, j)
			}
		}
	}
	if k.Sum() == 0 {
		return fmt.Errorf("%w: weights sum to zero", ErrInvalidKernel)
	}
	return nil
}

// Smooth convolves g with k and divides each sum by the kernel sum
// (integer division). Pixels within k.Offset() of any edge have no full
// window and are dropped, so the result is 2*offset narrower and shorter
// than the input and output (0,0) corresponds to input (offset, offset).
func Smooth(g *image.Gray, k Kernel) (*image.Gray, error) {
	if g == nil {
		return nil, ErrNilImage
	}
	if err := checkImage(g); err != nil {
		return nil, err
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}

	offset := k.Offset()
	bounds := g.Bounds()
	region := ValidRegion(bounds, offset)
	if region.Empty() {
		return nil, fmt.Errorf("%w: %dx%d grid, %dx%d kernel",
			ErrImageTooSmall, bounds.Dx(), bounds.Dy(), k.Size(), k.Size())
	}

	divisor := k.Sum()
	out := NewGrid(region.Dx(), region.Dy())
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			sum := 0
			for ky := -offset; ky <= offset; ky++ {
				for kx := -offset; kx <= offset; kx++ {
					sum += int(g.GrayAt(x+kx, y+ky).Y) * k[ky+offset][kx+offset]
				}
			}
			out.Pix[out.PixOffset(x-region.Min.X, y-region.Min.Y)] = uint8(clamp(sum/divisor, 0, 255))
		}
	}
	return out, nil
}
