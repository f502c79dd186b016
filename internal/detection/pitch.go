package detection

import (
	"fmt"
	"sort"
)

// SquareSize estimates the grid pitch: the gaps between consecutive
// horizontal lines and between consecutive vertical lines are pooled,
// sorted, and the element at index len/2 is returned. Both lists must be
// ascending, as SelectLines returns them.
func SquareSize(l Lines) (int, error) {
	var gaps []int
	for _, coords := range [][]int{l.Horizontal, l.Vertical} {
		for i := 1; i < len(coords); i++ {
			gaps = append(gaps, coords[i]-coords[i-1])
		}
	}
	if len(gaps) == 0 {
		return 0, fmt.Errorf("%w: got %d horizontal and %d vertical",
			ErrTooFewLines, len(l.Horizontal), len(l.Vertical))
	}
	sort.Ints(gaps)
	return gaps[len(gaps)/2], nil
}
