package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLines_Cross(t *testing.T) {
	lines, err := FindLines(crossGrid(20, 20, 5, 15), DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{15}, lines.Horizontal)
	assert.Equal(t, []int{5}, lines.Vertical)
}

func TestFindLines_Deterministic(t *testing.T) {
	g := crossGrid(40, 30, 12, 7)
	first, err := FindLines(g, DefaultConfig(), nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := FindLines(g, DefaultConfig(), nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFindLines_BlankGrid(t *testing.T) {
	g := crossGrid(10, 10, 0, 0)
	for i := range g.Pix {
		g.Pix[i] = 0
	}
	lines, err := FindLines(g, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Empty(t, lines.Horizontal)
	assert.Empty(t, lines.Vertical)
}

func TestSelectLines_ProximityMerge(t *testing.T) {
	tests := []struct {
		name  string
		cands []Candidate
		want  []int
	}{
		{
			name:  "stronger first",
			cands: []Candidate{{Votes: 30, Radius: 40}, {Votes: 25, Radius: 45}},
			want:  []int{40},
		},
		{
			name:  "stronger second",
			cands: []Candidate{{Votes: 25, Radius: 40}, {Votes: 30, Radius: 45}},
			want:  []int{45},
		},
		{
			name:  "tie keeps input order",
			cands: []Candidate{{Votes: 30, Radius: 45}, {Votes: 30, Radius: 40}},
			want:  []int{45},
		},
		{
			name:  "outside window",
			cands: []Candidate{{Votes: 30, Radius: 40}, {Votes: 25, Radius: 100}},
			want:  []int{40, 100},
		},
		{
			name:  "exactly window apart",
			cands: []Candidate{{Votes: 30, Radius: 100}, {Votes: 25, Radius: 40}},
			want:  []int{40, 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectLines(tt.cands, 60, CutoffLenient)
			assert.Equal(t, tt.want, got.Vertical)
			assert.Empty(t, got.Horizontal)
		})
	}
}

func TestSelectLines_ZeroWindowNeverDuplicates(t *testing.T) {
	// Bins 157 and 158 both project row 15 to y=15.
	cands := []Candidate{
		{Votes: 20, Radius: 15, Bin: 157},
		{Votes: 20, Radius: 15, Bin: 158},
		{Votes: 20, Radius: 5, Bin: 0},
		{Votes: 20, Radius: 5, Bin: 0},
		{Votes: 20, Radius: 6, Bin: 0},
	}
	got := SelectLines(cands, 0, CutoffLenient)
	assert.Equal(t, []int{15}, got.Horizontal)
	assert.Equal(t, []int{5, 6}, got.Vertical)
}

func TestFindLines_ZeroProximity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProximityRadius = 0
	lines, err := FindLines(crossGrid(20, 20, 5, 15), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{15}, lines.Horizontal)
	assert.Equal(t, []int{5}, lines.Vertical)
}

func TestSelectLines_Cutoff(t *testing.T) {
	cands := []Candidate{
		{Votes: 9, Radius: 200},
		{Votes: 80, Radius: 10},
		{Votes: 10, Radius: 300},
	}

	lenient := SelectLines(cands, 60, CutoffLenient)
	assert.Equal(t, []int{10, 300}, lenient.Vertical, "10 equals 80/8 and survives")

	strict := SelectLines(cands, 60, CutoffStrict)
	assert.Equal(t, []int{10}, strict.Vertical)
}

func TestSelectLines_Orientation(t *testing.T) {
	cands := []Candidate{
		{Votes: 50, Radius: 10, Bin: 78},  // diagonal
		{Votes: 40, Radius: 15, Bin: 157}, // horizontal
		{Votes: 40, Radius: 30, Bin: 1},   // nearly vertical, not bin 0
		{Votes: 35, Radius: 90, Bin: 158}, // horizontal
		{Votes: 30, Radius: 7, Bin: 0},    // vertical
	}
	got := SelectLines(cands, 20, CutoffLenient)
	assert.Equal(t, []int{15, 90}, got.Horizontal)
	assert.Equal(t, []int{7}, got.Vertical)
}

func TestSelectLines_Empty(t *testing.T) {
	got := SelectLines(nil, 60, CutoffLenient)
	assert.NotNil(t, got.Horizontal)
	assert.NotNil(t, got.Vertical)
	assert.Empty(t, got.Horizontal)
	assert.Empty(t, got.Vertical)
}

func TestSelectLines_DoesNotReorderInput(t *testing.T) {
	cands := []Candidate{{Votes: 1, Radius: 3}, {Votes: 9, Radius: 90}}
	SelectLines(cands, 10, CutoffLenient)
	assert.Equal(t, 1, cands[0].Votes)
}

func TestLines_ScaleAndOffset(t *testing.T) {
	l := Lines{Horizontal: []int{3, 10}, Vertical: []int{4}}

	assert.Equal(t, Lines{Horizontal: []int{9, 30}, Vertical: []int{12}}, l.Scale(3))
	assert.Equal(t, Lines{Horizontal: []int{4, 11}, Vertical: []int{5}}, l.Offset(1))
	assert.Equal(t, []int{3, 10}, l.Horizontal, "receiver is not modified")
}
