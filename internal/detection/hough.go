package detection

import (
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/gridlines/internal/imaging"
)

// Angle discretization: bins 0..628 at 0.01 radians cover one full turn.
const (
	AngleBins = 629
	AngleStep = 0.01
)

// Candidate is one populated accumulator cell.
type Candidate struct {
	Votes  int `json:"votes"`
	Radius int `json:"radius"`
	Bin    int `json:"bin"`
}

// Angle returns the cell's angle in radians.
func (c Candidate) Angle() float64 {
	return float64(c.Bin) * AngleStep
}

// Slope is -cos(θ)/sin(θ), infinite for θ = 0.
func (c Candidate) Slope() float64 {
	return -math.Cos(c.Angle()) / math.Sin(c.Angle())
}

// Intercept is r/sin(θ), the y where the line crosses x = 0.
func (c Candidate) Intercept() float64 {
	return float64(c.Radius) / math.Sin(c.Angle())
}

// Accumulator tallies (radius, angle) votes for the foreground pixels of a
// binary grid. Radii run from 0 to MaxRadius; negative projections are
// dropped.
type Accumulator struct {
	MaxRadius int
	Bins      int

	counts []int // radius-major
}

// trig holds cos and sin for every angle bin.
type trig struct {
	cos, sin [AngleBins]float64
}

func newTrig() *trig {
	t := &trig{}
	for bin := 0; bin < AngleBins; bin++ {
		theta := float64(bin) * AngleStep
		t.cos[bin] = math.Cos(theta)
		t.sin[bin] = math.Sin(theta)
	}
	return t
}

// project returns round(x·cosθ + y·sinθ), with halves rounded up.
func (t *trig) project(x, y, bin int) int {
	return int(math.Floor(float64(x)*t.cos[bin] + float64(y)*t.sin[bin] + 0.5))
}

// Accumulate runs both passes over g: the first finds the largest
// non-negative radius to size the array, the second casts the votes.
// Coordinates are taken relative to the grid's origin.
func Accumulate(g *image.Gray) (*Accumulator, error) {
	if g == nil {
		return nil, imaging.ErrNilImage
	}
	b := g.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, imaging.ErrEmptyImage
	}

	var points []image.Point
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if g.GrayAt(x, y).Y == imaging.White {
				points = append(points, image.Pt(x-b.Min.X, y-b.Min.Y))
			}
		}
	}

	t := newTrig()
	maxR := 0
	for _, p := range points {
		for bin := 0; bin < AngleBins; bin++ {
			if r := t.project(p.X, p.Y, bin); r > maxR {
				maxR = r
			}
		}
	}

	acc := &Accumulator{
		MaxRadius: maxR,
		Bins:      AngleBins,
		counts:    make([]int, (maxR+1)*AngleBins),
	}
	for _, p := range points {
		for bin := 0; bin < AngleBins; bin++ {
			if r := t.project(p.X, p.Y, bin); r >= 0 {
				acc.counts[r*AngleBins+bin]++
			}
		}
	}
	return acc, nil
}

// Votes returns the count at (r, bin), or 0 outside the array.
func (a *Accumulator) Votes(r, bin int) int {
	if r < 0 || r > a.MaxRadius || bin < 0 || bin >= a.Bins {
		return 0
	}
	return a.counts[r*a.Bins+bin]
}

// Total returns the number of votes cast.
func (a *Accumulator) Total() int {
	n := 0
	for _, v := range a.counts {
		n += v
	}
	return n
}

// Candidates lists every cell with at least one vote, radius-major then
// by angle bin.
func (a *Accumulator) Candidates() []Candidate {
	var out []Candidate
	for r := 0; r <= a.MaxRadius; r++ {
		for bin := 0; bin < a.Bins; bin++ {
			if v := a.counts[r*a.Bins+bin]; v > 0 {
				out = append(out, Candidate{Votes: v, Radius: r, Bin: bin})
			}
		}
	}
	return out
}

// Image renders the accumulator with angle bins across and radius up,
// one gray level per vote, saturating at white.
func (a *Accumulator) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, a.Bins, a.MaxRadius+1))
	for r := 0; r <= a.MaxRadius; r++ {
		for bin := 0; bin < a.Bins; bin++ {
			v := min(a.counts[r*a.Bins+bin], 255)
			img.SetGray(bin, a.MaxRadius-r, color.Gray{Y: uint8(v)})
		}
	}
	return img
}
