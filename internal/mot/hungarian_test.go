package mot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHungarianAssign(t *testing.T) {
	tests := []struct {
		name string
		cost [][]float64
		want []int
	}{
		{
			name: "empty matrix",
			cost: nil,
			want: nil,
		},
		{
			name: "single element",
			cost: [][]float64{{5}},
			want: []int{0},
		},
		{
			name: "diagonal optimum",
			cost: [][]float64{
				{1, 4},
				{4, 1},
			},
			want: []int{0, 1},
		},
		{
			name: "anti-diagonal optimum",
			cost: [][]float64{
				{4, 1},
				{1, 4},
			},
			want: []int{1, 0},
		},
		{
			name: "3x3 unique optimum",
			cost: [][]float64{
				{4, 1, 3},
				{2, 0, 5},
				{3, 2, 2},
			},
			want: []int{1, 0, 2},
		},
		{
			name: "more rows than columns",
			cost: [][]float64{
				{1, 2},
				{3, 1},
				{2, 4},
			},
			want: []int{0, 1, Unassigned},
		},
		{
			name: "more columns than rows",
			cost: [][]float64{
				{1, 9, 9},
				{9, 1, 9},
			},
			want: []int{0, 1},
		},
		{
			name: "forbidden row stays unassigned",
			cost: [][]float64{
				{forbiddenCost, forbiddenCost},
				{1, 2},
			},
			want: []int{Unassigned, 0},
		},
		{
			name: "no columns",
			cost: [][]float64{{}, {}},
			want: []int{Unassigned, Unassigned},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hungarianAssign(tt.cost)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("hungarianAssign() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHungarianAssignAllZero(t *testing.T) {
	cost := [][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	got := hungarianAssign(cost)
	if len(got) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(got))
	}
	seen := make(map[int]bool)
	for i, col := range got {
		if col < 0 || col > 2 {
			t.Errorf("row %d assigned to invalid column %d", i, col)
		}
		if seen[col] {
			t.Errorf("column %d assigned twice", col)
		}
		seen[col] = true
	}
}

func TestHungarianSolverSentinel(t *testing.T) {
	// Entries at the sentinel must behave as forbidden: the only feasible
	// matching here is the anti-diagonal.
	cm := &CostMatrix{
		Costs: [][]float64{
			{100, 1},
			{1, 100},
		},
		N:               2,
		M:               2,
		MaxPossibleCost: 100,
		MaxCost:         100,
	}
	got := hungarianSolver{}.Solve(cm)
	want := []int{1, 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Solve() mismatch (-want +got):\n%s", diff)
	}
}

func TestHungarianSolverAllSentinel(t *testing.T) {
	cm := &CostMatrix{
		Costs: [][]float64{
			{50, 50},
			{50, 50},
		},
		N:               2,
		M:               2,
		MaxPossibleCost: 50,
		MaxCost:         50,
	}
	got := hungarianSolver{}.Solve(cm)
	for i, col := range got {
		if col != Unassigned {
			t.Errorf("row %d: expected Unassigned, got %d", i, col)
		}
	}
}
