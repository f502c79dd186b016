package detection

import (
	"math"
	"sort"
)

// horizontalSlope is the largest |slope| still treated as horizontal.
const horizontalSlope = 0.01

// Lines holds detected grid lines: Y positions of horizontal lines and X
// positions of vertical lines, each ascending.
type Lines struct {
	Horizontal []int `json:"horizontal"`
	Vertical   []int `json:"vertical"`
}

// Scale returns a copy with every coordinate multiplied by f.
func (l Lines) Scale(f int) Lines {
	return l.mapCoords(func(v int) int { return v * f })
}

// Offset returns a copy with d added to every coordinate.
func (l Lines) Offset(d int) Lines {
	return l.mapCoords(func(v int) int { return v + d })
}

func (l Lines) mapCoords(fn func(int) int) Lines {
	out := Lines{
		Horizontal: make([]int, len(l.Horizontal)),
		Vertical:   make([]int, len(l.Vertical)),
	}
	for i, v := range l.Horizontal {
		out.Horizontal[i] = fn(v)
	}
	for i, v := range l.Vertical {
		out.Vertical[i] = fn(v)
	}
	return out
}

// SelectLines ranks candidates by votes, drops those under
// top*cutoff, keeps only vertical (bin 0) and near-horizontal cells, and
// merges cells whose coordinate lies within proximity of one already
// accepted in the same direction. A coordinate is never accepted twice,
// even with a proximity of 0. The strongest cell of a cluster wins;
// equal votes keep the input order.
func SelectLines(cands []Candidate, proximity int, cutoff float64) Lines {
	return selectLines(cands, proximity, cutoff).Lines
}

// selection is a SelectLines result that also keeps the accepted
// horizontal cells, strongest first, for drawing them at their slope.
type selection struct {
	Lines
	rows []Candidate
}

func selectLines(cands []Candidate, proximity int, cutoff float64) selection {
	out := Lines{Horizontal: []int{}, Vertical: []int{}}
	var rows []Candidate
	if len(cands) == 0 {
		return selection{Lines: out}
	}

	ranked := make([]Candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})

	floor := float64(ranked[0].Votes) * cutoff
	for _, c := range ranked {
		if float64(c.Votes) < floor {
			break
		}

		if c.Bin == 0 {
			if !near(out.Vertical, c.Radius, proximity) {
				out.Vertical = append(out.Vertical, c.Radius)
			}
			continue
		}
		if math.Abs(c.Slope()) < horizontalSlope {
			y := int(math.Round(c.Intercept()))
			if !near(out.Horizontal, y, proximity) {
				out.Horizontal = append(out.Horizontal, y)
				rows = append(rows, c)
			}
		}
	}

	sort.Ints(out.Horizontal)
	sort.Ints(out.Vertical)
	return selection{Lines: out, rows: rows}
}

func near(accepted []int, v, radius int) bool {
	for _, a := range accepted {
		d := a - v
		if d < 0 {
			d = -d
		}
		if d < radius || d == 0 {
			return true
		}
	}
	return false
}
