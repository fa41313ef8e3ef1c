package mot

import "fmt"

// AssignmentSolver finds a minimum-cost partial matching of tracks to
// regions over a CostMatrix. Implementations must leave rows unmatched
// (Unassigned) rather than force a match when no feasible column remains;
// entries at or above the sentinel MaxPossibleCost are infeasible.
type AssignmentSolver interface {
	// Solve returns assignment[i] = region index matched to track i, or
	// Unassigned. No region index appears twice.
	Solve(cm *CostMatrix) []int
}

// NewAssignmentSolver constructs the solver for the given strategy. An
// unrecognized kind is a configuration error: no solver is produced and
// the caller must not proceed.
func NewAssignmentSolver(kind SolverKind) (AssignmentSolver, error) {
	switch kind {
	case SolverHungarian:
		return hungarianSolver{}, nil
	case SolverGreedy:
		return greedySolver{}, nil
	default:
		return nil, fmt.Errorf("mot: unknown assignment solver %q", kind)
	}
}
