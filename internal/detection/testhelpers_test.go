package detection

import (
	"image"
	"image/color"

	"github.com/ironsheep/gridlines/internal/imaging"
)

// crossGrid is a black binary grid with one white column at x and one
// white row at y.
func crossGrid(width, height, x, y int) *image.Gray {
	g := imaging.NewGrid(width, height)
	for i := 0; i < height; i++ {
		g.SetGray(x, i, color.Gray{Y: imaging.White})
	}
	for i := 0; i < width; i++ {
		g.SetGray(i, y, color.Gray{Y: imaging.White})
	}
	return g
}

// quadrantImage is a black square whose lower-right quadrant, from (at, at)
// onward, has the given gray level. Levels must stay at or below the
// brightness cutoff for the edges to register.
func quadrantImage(size, at int, level uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(0)
			if x >= at && y >= at {
				v = level
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// recordingSink remembers the stage names it was handed, in order.
type recordingSink struct {
	names  []string
	images map[string]image.Image
}

func (s *recordingSink) Save(name string, img image.Image) {
	if s.images == nil {
		s.images = make(map[string]image.Image)
	}
	s.names = append(s.names, name)
	s.images[name] = img
}
