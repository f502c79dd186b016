package imaging

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradient_Step(t *testing.T) {
	g := stepGrid(10, 10, 5, 80)

	field, err := Gradient(g, DefaultEdgeParams(), false)
	require.NoError(t, err)
	assert.Equal(t, 320, field.Max)
	assert.Nil(t, field.Orientation)

	for y := 1; y < 9; y++ {
		assert.Equal(t, 0, field.At(3, y))
		assert.Equal(t, 320, field.At(4, y))
		assert.Equal(t, 320, field.At(5, y))
		assert.Equal(t, 0, field.At(6, y))
	}
	// The frame is never computed.
	assert.Equal(t, 0, field.At(4, 0))
	assert.Equal(t, 0, field.At(5, 9))
	assert.Equal(t, 0, field.At(-1, 3))
}

func TestGradient_Scharr(t *testing.T) {
	p := DefaultEdgeParams()
	p.Operator = Scharr
	field, err := Gradient(stepGrid(10, 10, 5, 80), p, false)
	require.NoError(t, err)
	assert.Equal(t, 16*80, field.Max)
}

func TestGradient_Orientation(t *testing.T) {
	vertical, err := Gradient(stepGrid(8, 8, 4, 50), DefaultEdgeParams(), true)
	require.NoError(t, err)
	assert.InDelta(t, 0, vertical.AngleAt(3, 4), 1e-9)

	horizontal := grayGrid(8, 8, func(_, y int) uint8 {
		if y >= 4 {
			return 50
		}
		return 0
	})
	field, err := Gradient(horizontal, DefaultEdgeParams(), true)
	require.NoError(t, err)
	assert.InDelta(t, 90, field.AngleAt(4, 3), 1e-9)
}

func TestOrientation_Range(t *testing.T) {
	tests := []struct {
		gx, gy int
		want   float64
	}{
		{1, 0, 0},
		{-1, 0, 0},
		{0, 1, 90},
		{0, -1, 90},
		{1, 1, 45},
		{-1, 1, 135},
		{1, -1, 135},
	}
	for _, tt := range tests {
		got := orientation(tt.gx, tt.gy)
		assert.InDelta(t, tt.want, got, 1e-9, "orientation(%d,%d)", tt.gx, tt.gy)
		assert.True(t, got >= 0 && got < 180)
	}
}

func TestGradient_BrightnessExclusion(t *testing.T) {
	bright := stepGrid(10, 10, 5, 200)

	field, err := Gradient(bright, DefaultEdgeParams(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, field.Max)
	assert.Zero(t, CountWhite(Threshold(field, DefaultAlpha, DefaultBeta)))

	p := DefaultEdgeParams()
	p.BrightnessCutoff = -1
	field, err = Gradient(bright, p, false)
	require.NoError(t, err)
	assert.Equal(t, 800, field.Max)
}

func TestExtractEdges_Step(t *testing.T) {
	edges, field, err := ExtractEdges(stepGrid(10, 10, 5, 80), DefaultEdgeParams())
	require.NoError(t, err)
	assert.Equal(t, 48, ProductThreshold(field.Max, DefaultAlpha, DefaultBeta))
	assert.Equal(t, 16, CountWhite(edges))
	for _, p := range whitePoints(edges) {
		assert.Contains(t, []int{4, 5}, p.X)
	}
}

func TestExtractEdges_Uniform(t *testing.T) {
	flat := grayGrid(12, 12, func(int, int) uint8 { return 60 })
	edges, field, err := ExtractEdges(flat, DefaultEdgeParams())
	require.NoError(t, err)
	assert.Equal(t, 0, field.Max)
	assert.Zero(t, CountWhite(edges))
	assert.Equal(t, image.Rect(0, 0, 12, 12), edges.Bounds())
}

func TestExtractEdges_Monotone(t *testing.T) {
	g := grayGrid(20, 20, func(x, y int) uint8 { return uint8((x*37 + y*91) % 100) })

	last := -1
	for _, alpha := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		p := DefaultEdgeParams()
		p.Alpha = alpha
		edges, _, err := ExtractEdges(g, p)
		require.NoError(t, err)
		n := CountWhite(edges)
		if last >= 0 {
			assert.LessOrEqual(t, n, last, "alpha=%v", alpha)
		}
		last = n
	}

	last = -1
	for _, beta := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		p := DefaultEdgeParams()
		p.Beta = beta
		edges, _, err := ExtractEdges(g, p)
		require.NoError(t, err)
		n := CountWhite(edges)
		if last >= 0 {
			assert.LessOrEqual(t, n, last, "beta=%v", beta)
		}
		last = n
	}
}

func TestExtractEdges_InvalidThresholds(t *testing.T) {
	g := stepGrid(6, 6, 3, 80)
	for _, ab := range [][2]float64{{0, 0.5}, {1, 0.5}, {0.3, 0}, {0.3, 1.5}} {
		p := DefaultEdgeParams()
		p.Alpha, p.Beta = ab[0], ab[1]
		_, _, err := ExtractEdges(g, p)
		assert.ErrorIs(t, err, ErrInvalidThreshold, "alpha=%v beta=%v", ab[0], ab[1])
	}
}

func TestGradientField_Image(t *testing.T) {
	field, err := Gradient(stepGrid(10, 10, 5, 80), DefaultEdgeParams(), false)
	require.NoError(t, err)
	img := field.Image()
	assert.Equal(t, uint8(255), img.GrayAt(4, 4).Y)
	assert.Equal(t, uint8(0), img.GrayAt(7, 4).Y)
}

func TestParseOperator(t *testing.T) {
	op, err := ParseOperator("Scharr")
	require.NoError(t, err)
	assert.Equal(t, Scharr, op)

	op, err = ParseOperator("sobel")
	require.NoError(t, err)
	assert.Equal(t, Sobel, op)

	_, err = ParseOperator("prewitt")
	assert.Error(t, err)
}
