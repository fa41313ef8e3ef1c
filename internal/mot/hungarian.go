package mot

import "math"

// hungarianSolver implements the Kuhn–Munkres (Hungarian) algorithm for
// optimal track-to-region assignment. It solves the rectangular assignment
// problem in O(n³) time and guarantees the global minimum total cost:
// unlike the greedy solver, two regions competing for the same track can
// never split a trajectory.
//
// Sentinel entries (type-incompatible pairs at MaxPossibleCost) are mapped
// to a forbidden cost so the solver never selects them; the affected rows
// stay Unassigned.
type hungarianSolver struct{}

// forbiddenCost stands in for infinity in the padded cost matrix.
const forbiddenCost = 1e18

func (hungarianSolver) Solve(cm *CostMatrix) []int {
	cost := make([][]float64, cm.N)
	for i := 0; i < cm.N; i++ {
		cost[i] = make([]float64, cm.M)
		for j := 0; j < cm.M; j++ {
			c := cm.Costs[i][j]
			if c >= cm.MaxPossibleCost {
				c = forbiddenCost
			}
			cost[i][j] = c
		}
	}
	return hungarianAssign(cost)
}

// hungarianAssign solves the rectangular assignment problem for an n×m
// cost matrix. It returns assignment[i] = column assigned to row i, or
// Unassigned. Costs >= forbiddenCost are never selected.
//
// Rectangular inputs are padded square with forbiddenCost so that excess
// rows stay unassigned.
func hungarianAssign(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])
	if m == 0 {
		result := make([]int, n)
		for i := range result {
			result[i] = Unassigned
		}
		return result
	}

	dim := n
	if m > dim {
		dim = m
	}

	c := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		c[i] = make([]float64, dim)
		for j := 0; j < dim; j++ {
			if i < n && j < m {
				c[i][j] = cost[i][j]
			} else {
				c[i][j] = forbiddenCost
			}
		}
	}

	// Kuhn–Munkres with row/column potentials (Jonker–Volgenant variant).
	// 1-indexed internally; column 0 is the virtual start of each
	// augmenting path.
	const inf = math.MaxFloat64 / 2

	u := make([]float64, dim+1)    // Row potentials
	v := make([]float64, dim+1)    // Column potentials
	p := make([]int, dim+1)        // p[j] = row assigned to column j
	way := make([]int, dim+1)      // way[j] = previous column in augmenting path
	minv := make([]float64, dim+1) // Minimal reduced cost to reach column j
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0

		for j := 1; j <= dim; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1

			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			if j1 < 0 {
				break
			}

			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the path.
		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	rowAssign := make([]int, dim)
	for i := range rowAssign {
		rowAssign[i] = Unassigned
	}
	for j := 1; j <= dim; j++ {
		if p[j] > 0 && p[j] <= dim {
			rowAssign[p[j]-1] = j - 1
		}
	}

	// Trim padding and reject forbidden assignments.
	result := make([]int, n)
	for i := 0; i < n; i++ {
		col := rowAssign[i]
		if col < 0 || col >= m || cost[i][col] >= forbiddenCost {
			result[i] = Unassigned
		} else {
			result[i] = col
		}
	}

	return result
}
