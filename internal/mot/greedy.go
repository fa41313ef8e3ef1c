package mot

// greedySolver repeatedly selects the cheapest remaining feasible
// (track, region) pair and removes its row and column. It runs in
// O(N·M·min(N,M)) with trivial constants and no allocation pressure,
// trading assignment quality for latency: the result is a local minimum,
// not necessarily the global one.
type greedySolver struct{}

func (greedySolver) Solve(cm *CostMatrix) []int {
	assignment := make([]int, cm.N)
	for i := range assignment {
		assignment[i] = Unassigned
	}

	rowDone := make([]bool, cm.N)
	colDone := make([]bool, cm.M)

	rounds := cm.N
	if cm.M < rounds {
		rounds = cm.M
	}

	for k := 0; k < rounds; k++ {
		bestI, bestJ := -1, -1
		best := cm.MaxPossibleCost

		for i := 0; i < cm.N; i++ {
			if rowDone[i] {
				continue
			}
			for j := 0; j < cm.M; j++ {
				if colDone[j] {
					continue
				}
				if c := cm.Costs[i][j]; c < best {
					best = c
					bestI, bestJ = i, j
				}
			}
		}

		// No feasible pair left: every remaining entry is at the sentinel.
		if bestI < 0 {
			break
		}

		assignment[bestI] = bestJ
		rowDone[bestI] = true
		colDone[bestJ] = true
	}

	return assignment
}
