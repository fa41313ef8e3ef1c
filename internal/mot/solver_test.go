package mot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignmentSolver(t *testing.T) {
	t.Run("hungarian", func(t *testing.T) {
		s, err := NewAssignmentSolver(SolverHungarian)
		require.NoError(t, err)
		assert.IsType(t, hungarianSolver{}, s)
	})

	t.Run("greedy", func(t *testing.T) {
		s, err := NewAssignmentSolver(SolverGreedy)
		require.NoError(t, err)
		assert.IsType(t, greedySolver{}, s)
	})

	t.Run("unknown kind is an error", func(t *testing.T) {
		s, err := NewAssignmentSolver("simulated-annealing")
		assert.Nil(t, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown assignment solver")
	})

	t.Run("empty kind is an error", func(t *testing.T) {
		_, err := NewAssignmentSolver("")
		require.Error(t, err)
	})
}
