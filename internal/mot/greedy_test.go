package mot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testMatrix(costs [][]float64, maxPossibleCost float64) *CostMatrix {
	cm := &CostMatrix{
		Costs:           costs,
		N:               len(costs),
		MaxPossibleCost: maxPossibleCost,
	}
	if cm.N > 0 {
		cm.M = len(costs[0])
	}
	for _, row := range costs {
		for _, c := range row {
			if c > cm.MaxCost {
				cm.MaxCost = c
			}
		}
	}
	return cm
}

func TestGreedySolve(t *testing.T) {
	tests := []struct {
		name  string
		costs [][]float64
		want  []int
	}{
		{
			name: "diagonal optimum",
			costs: [][]float64{
				{1, 4},
				{4, 1},
			},
			want: []int{0, 1},
		},
		{
			name: "more rows than columns",
			costs: [][]float64{
				{1, 2},
				{3, 1},
				{2, 4},
			},
			want: []int{0, 1, Unassigned},
		},
		{
			name: "all sentinel",
			costs: [][]float64{
				{100, 100},
				{100, 100},
			},
			want: []int{Unassigned, Unassigned},
		},
		{
			name: "partial feasibility",
			costs: [][]float64{
				{100, 3},
				{100, 100},
			},
			want: []int{1, Unassigned},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := greedySolver{}.Solve(testMatrix(tt.costs, 100))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Solve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Both solvers agree when the cheapest pairs do not compete.
func TestSolversAgreeOnEasyMatrix(t *testing.T) {
	cm := testMatrix([][]float64{
		{1, 4},
		{4, 1},
	}, 100)

	hung := hungarianSolver{}.Solve(cm)
	greedy := greedySolver{}.Solve(cm)
	if diff := cmp.Diff(hung, greedy); diff != "" {
		t.Errorf("solvers disagree (-hungarian +greedy):\n%s", diff)
	}
}

// The greedy solver locks in the single cheapest entry even when the
// global optimum avoids it. This documents the known quality gap.
func TestGreedySuboptimal(t *testing.T) {
	cm := testMatrix([][]float64{
		{1, 2},
		{2, 99},
	}, 100)

	greedy := greedySolver{}.Solve(cm)
	wantGreedy := []int{0, 1} // Total 100
	if diff := cmp.Diff(wantGreedy, greedy); diff != "" {
		t.Errorf("greedy mismatch (-want +got):\n%s", diff)
	}

	hung := hungarianSolver{}.Solve(cm)
	wantHung := []int{1, 0} // Total 4
	if diff := cmp.Diff(wantHung, hung); diff != "" {
		t.Errorf("hungarian mismatch (-want +got):\n%s", diff)
	}
}

func TestGreedyNoDuplicateColumns(t *testing.T) {
	cm := testMatrix([][]float64{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}, 100)

	got := greedySolver{}.Solve(cm)
	seen := make(map[int]bool)
	for i, col := range got {
		if col == Unassigned {
			t.Errorf("row %d unexpectedly unassigned", i)
			continue
		}
		if seen[col] {
			t.Errorf("column %d assigned twice", col)
		}
		seen[col] = true
	}
}
