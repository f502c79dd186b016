package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/gridlines/internal/imaging"
)

func TestDetectLines_Quadrant(t *testing.T) {
	lines, err := DetectLines(quadrantImage(60, 30, 90), DefaultConfig(), nil)
	require.NoError(t, err)
	require.Len(t, lines.Horizontal, 1)
	require.Len(t, lines.Vertical, 1)
	assert.InDelta(t, 29.5, float64(lines.Horizontal[0]), 2)
	assert.InDelta(t, 29.5, float64(lines.Vertical[0]), 2)
}

func TestDetectLines_Deterministic(t *testing.T) {
	img := quadrantImage(48, 20, 70)
	first, err := DetectLines(img, DefaultConfig(), nil)
	require.NoError(t, err)
	again, err := DetectLines(img, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestDetectLines_BrightLinesExcluded(t *testing.T) {
	// Every window touching the bright quadrant is zeroed, and everything
	// else is flat, so nothing is found.
	lines, err := DetectLines(quadrantImage(40, 20, 200), DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Empty(t, lines.Horizontal)
	assert.Empty(t, lines.Vertical)

	cfg := DefaultConfig()
	cfg.BrightnessCutoff = -1
	lines, err = DetectLines(quadrantImage(40, 20, 200), cfg, nil)
	require.NoError(t, err)
	assert.Len(t, lines.Horizontal, 1)
	assert.Len(t, lines.Vertical, 1)
}

func TestLocateLines_Scaled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scale = 2

	lines, err := LocateLines(quadrantImage(120, 60, 90), cfg, nil)
	require.NoError(t, err)
	require.Len(t, lines.Horizontal, 1)
	require.Len(t, lines.Vertical, 1)
	assert.InDelta(t, 59, float64(lines.Horizontal[0]), 6)
	assert.InDelta(t, 59, float64(lines.Vertical[0]), 6)
	assert.Zero(t, lines.Vertical[0]%2, "coordinates are multiples of the scale")
}

func TestDetectLines_SinkStages(t *testing.T) {
	tests := []struct {
		mode EdgeMode
		want []string
	}{
		{EdgeThreshold, []string{"grayscale", "blurred", "gradient", "threshold-gradient",
			"eroded", "dilate", "graph", "hough-line-transform"}},
		{EdgeThinning, []string{"grayscale", "blurred", "canny-edge", "hysteresis-threshold",
			"eroded", "dilate", "graph", "hough-line-transform"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.EdgeMode = tt.mode
			sink := &recordingSink{}

			_, err := DetectLines(quadrantImage(40, 20, 80), cfg, sink)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sink.names)

			// Smoothing trims one pixel per side with the 3x3 kernel.
			assert.Equal(t, image.Rect(0, 0, 38, 38), sink.images["dilate"].Bounds())
			assert.Equal(t, image.Rect(0, 0, 40, 40), sink.images["grayscale"].Bounds())
		})
	}
}

func TestDetectLines_SinkDoesNotChangeResult(t *testing.T) {
	img := quadrantImage(50, 25, 90)
	plain, err := DetectLines(img, DefaultConfig(), imaging.NopSink{})
	require.NoError(t, err)
	recorded, err := DetectLines(img, DefaultConfig(), &recordingSink{})
	require.NoError(t, err)
	assert.Equal(t, plain, recorded)
}

func TestDrawSelection_FollowsSlope(t *testing.T) {
	// Bin 158 has slope +0.0092: row 20 at x=0 drifts to row 22 by x=199.
	sel := selectLines([]Candidate{
		{Votes: 10, Radius: 20, Bin: 158},
		{Votes: 10, Radius: 7, Bin: 0},
	}, 5, CutoffLenient)
	require.Equal(t, []int{20}, sel.Horizontal)

	red := color.RGBA{255, 0, 0, 255}
	out := drawSelection(imaging.NewGrid(200, 40), sel, red)

	assert.Equal(t, red, out.RGBAAt(0, 20))
	assert.Equal(t, red, out.RGBAAt(199, 22))
	assert.NotEqual(t, red, out.RGBAAt(199, 20))
	assert.Equal(t, red, out.RGBAAt(7, 39))
}

func TestDetectLines_Errors(t *testing.T) {
	_, err := DetectLines(nil, DefaultConfig(), nil)
	assert.ErrorIs(t, err, imaging.ErrNilImage)

	var missing *image.RGBA
	_, err = DetectLines(missing, DefaultConfig(), nil)
	assert.ErrorIs(t, err, imaging.ErrNilImage)

	cfg := DefaultConfig()
	cfg.Kernel = imaging.Kernel7x7
	_, err = DetectLines(image.NewRGBA(image.Rect(0, 0, 5, 5)), cfg, nil)
	assert.ErrorIs(t, err, imaging.ErrImageTooSmall)

	cfg = DefaultConfig()
	cfg.Alpha = 2
	_, err = DetectLines(quadrantImage(20, 10, 50), cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Scale = 100
	_, err = LocateLines(quadrantImage(20, 10, 50), cfg, nil)
	assert.ErrorIs(t, err, imaging.ErrImageTooSmall)
}

func TestEdgeMap_Binary(t *testing.T) {
	edges, err := EdgeMap(quadrantImage(40, 20, 90), DefaultConfig(), nil)
	require.NoError(t, err)
	for _, v := range edges.Pix {
		require.True(t, v == imaging.White || v == imaging.Black)
	}
	assert.Positive(t, imaging.CountWhite(edges))
}
