package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBoard saves a 60x60 black image whose lower-right quadrant from
// (30, 30) is dark gray.
func writeBoard(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			v := uint8(0)
			if x >= 30 && y >= 30 {
				v = 90
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}

	path := filepath.Join(dir, "board.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	board := writeBoard(t, dir)
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-json", "-out", out, "-save", "-labels", board}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var res output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	require.Len(t, res.Horizontal, 1)
	require.Len(t, res.Vertical, 1)
	assert.InDelta(t, 29.5, float64(res.Vertical[0]), 2)
	assert.Zero(t, res.SquareSize)

	for _, name := range []string{"output", "grayscale", "blurred", "gradient", "threshold-gradient",
		"eroded", "dilate", "graph", "hough-line-transform"} {
		_, err := os.Stat(filepath.Join(out, name+".png"))
		assert.NoError(t, err, name)
	}
}

func TestRun_Text(t *testing.T) {
	board := writeBoard(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run([]string{"-cutoff", "strict", "-kernel", "5", board}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Horizontal lines (y): [")
	assert.Contains(t, stdout.String(), "Square size: unknown")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	board := writeBoard(t, dir)
	cfgPath := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"mode": "thinning", "cutoff": 0.25}`), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "-json", board}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"sigma": 2}`), 0o644))
	code = run([]string{"-config", bad, board}, &stdout, &stderr)
	assert.Equal(t, 2, code)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	board := writeBoard(t, dir)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no image", nil, 2},
		{"unknown flag", []string{"-nope", board}, 2},
		{"save without out", []string{"-save", board}, 2},
		{"bad alpha", []string{"-alpha", "1.5", board}, 2},
		{"bad color", []string{"-color", "xyz", board}, 2},
		{"missing file", []string{filepath.Join(dir, "missing.png")}, 1},
		{"scale too large", []string{"-scale", "100", board}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "gridlines dev")
}
