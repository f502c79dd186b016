package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePNG(t *testing.T) {
	grid := binaryRect(6, 4, image.Rect(1, 1, 3, 3))

	enc, err := EncodePNG(grid)
	require.NoError(t, err)
	assert.Equal(t, 6, enc.Width)
	assert.Equal(t, 4, enc.Height)
	assert.Equal(t, "image/png", enc.MimeType)

	raw, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, grid.Bounds(), decoded.Bounds())
}
