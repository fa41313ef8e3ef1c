package mot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const testFrameArea = 640.0 * 480.0

func newTestTrack(t *testing.T, s *Settings, box Rect, typ ObjectType) *Track {
	t.Helper()
	return newTrack(0, NewRegion(box, typ, 1), RegionDescriptor{}, s)
}

func TestCostMatrixSentinelForIncompatibleTypes(t *testing.T) {
	s := DefaultSettings()
	track := newTestTrack(t, &s, Rect{0, 0, 100, 100}, "car")
	regions := []Region{NewRegion(Rect{0, 0, 100, 100}, "person", 1)}

	cm := buildCostMatrix([]*Track{track}, regions, nil, &s, testFrameArea)

	require.Equal(t, 1, cm.N)
	require.Equal(t, 1, cm.M)
	assert.Equal(t, testFrameArea, cm.Costs[0][0], "incompatible pair must cost exactly the frame area")
	assert.Equal(t, testFrameArea, cm.MaxPossibleCost)
	assert.Equal(t, testFrameArea, cm.MaxCost)
}

func TestCostMatrixIdenticalRegionIsFree(t *testing.T) {
	s := DefaultSettings()
	box := Rect{0, 0, 100, 100}
	track := newTestTrack(t, &s, box, "car")
	regions := []Region{NewRegion(box, "car", 1)}

	cm := buildCostMatrix([]*Track{track}, regions, nil, &s, testFrameArea)

	assert.InDelta(t, 0, cm.Costs[0][0], 1e-9)
}

func TestCostMatrixCenterMetric(t *testing.T) {
	s := DefaultSettings()
	s.MetricWeights = [metricCount]float64{}
	s.MetricWeights[MetricCenter] = 1.0

	// Track box 100x100 at origin: with the default relative radius policy
	// the search ellipse has semi-axes 0.8 * 100 = 80 around (50, 50).
	track := newTestTrack(t, &s, Rect{0, 0, 100, 100}, "car")

	tests := []struct {
		name   string
		center Point
		want   float64
	}{
		{"at predicted center", Point{50, 50}, 0},
		{"halfway to boundary", Point{90, 50}, 0.5},
		{"on the boundary", Point{130, 50}, 1},
		{"far outside clamps to weight", Point{450, 50}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := Rect{X: tt.center.X - 50, Y: tt.center.Y - 50, W: 100, H: 100}
			regions := []Region{NewRegion(box, "car", 1)}
			cm := buildCostMatrix([]*Track{track}, regions, nil, &s, testFrameArea)
			assert.InDelta(t, tt.want, cm.Costs[0][0], 1e-9)
		})
	}
}

func TestCostMatrixSizeMetric(t *testing.T) {
	s := DefaultSettings()
	s.MetricWeights = [metricCount]float64{}
	s.MetricWeights[MetricSize] = 1.0

	track := newTestTrack(t, &s, Rect{0, 0, 100, 100}, "car")

	t.Run("same center half width", func(t *testing.T) {
		// e = 0, dw = 0.5, dh = 1: cost = 1 - (0.5+1)/2 = 0.25.
		regions := []Region{NewRegion(Rect{25, 0, 50, 100}, "car", 1)}
		cm := buildCostMatrix([]*Track{track}, regions, nil, &s, testFrameArea)
		assert.InDelta(t, 0.25, cm.Costs[0][0], 1e-9)
	})

	t.Run("outside the ellipse costs the full weight", func(t *testing.T) {
		regions := []Region{NewRegion(Rect{400, 0, 100, 100}, "car", 1)}
		cm := buildCostMatrix([]*Track{track}, regions, nil, &s, testFrameArea)
		assert.InDelta(t, 1.0, cm.Costs[0][0], 1e-9)
	})
}

func TestCostMatrixOverlapMetric(t *testing.T) {
	s := DefaultSettings()
	s.MetricWeights = [metricCount]float64{}
	s.MetricWeights[MetricOverlap] = 1.0

	track := newTestTrack(t, &s, Rect{0, 0, 100, 100}, "car")
	regions := []Region{
		NewRegion(Rect{0, 0, 100, 100}, "car", 1),   // IoU 1
		NewRegion(Rect{200, 200, 50, 50}, "car", 1), // IoU 0
	}

	cm := buildCostMatrix([]*Track{track}, regions, nil, &s, testFrameArea)
	assert.InDelta(t, 0, cm.Costs[0][0], 1e-9)
	assert.InDelta(t, 1, cm.Costs[0][1], 1e-9)
}

func TestCostMatrixNearTypesAreDirectional(t *testing.T) {
	s := DefaultSettings()
	s.AddNearType("car", "truck", false)

	box := Rect{0, 0, 100, 100}
	carTrack := newTrack(0, NewRegion(box, "car", 1), RegionDescriptor{}, &s)
	truckTrack := newTrack(1, NewRegion(box, "truck", 1), RegionDescriptor{}, &s)

	regions := []Region{
		NewRegion(box, "truck", 1),
		NewRegion(box, "car", 1),
	}

	cm := buildCostMatrix([]*Track{carTrack, truckTrack}, regions, nil, &s, testFrameArea)

	// car track accepts truck regions; truck track does not accept car.
	assert.Less(t, cm.Costs[0][0], testFrameArea)
	assert.Equal(t, testFrameArea, cm.Costs[1][1])
}

func TestCostMatrixEmbeddingExactTypeGate(t *testing.T) {
	s := DefaultSettings()
	s.MetricWeights = [metricCount]float64{}
	s.MetricWeights[MetricEmbedding] = 1.0
	s.AddNearType("car", "truck", true)

	box := Rect{0, 0, 100, 100}
	trackDesc := RegionDescriptor{
		Embedding: mat.NewVecDense(2, []float64{1, 0}),
		EmbDot:    1,
	}
	track := newTrack(0, NewRegion(box, "car", 1), trackDesc, &s)

	orthogonal := RegionDescriptor{
		Embedding: mat.NewVecDense(2, []float64{0, 1}),
		EmbDot:    1,
	}
	regions := []Region{
		NewRegion(box, "car", 1),   // Exact type: embedding compared
		NewRegion(box, "truck", 1), // Near type: passes the gate, embedding skipped
	}
	descs := []RegionDescriptor{orthogonal, orthogonal}

	cm := buildCostMatrix([]*Track{track}, regions, descs, &s, testFrameArea)

	// Orthogonal embeddings: cosine 0, distance 1.
	assert.InDelta(t, 1.0, cm.Costs[0][0], 1e-9)
	// Embedding comparison requires exact type equality even when the pair
	// is otherwise compatible.
	assert.InDelta(t, 0.0, cm.Costs[0][1], 1e-9)
}

func TestCostMatrixFixedMinRadius(t *testing.T) {
	s := DefaultSettings()
	s.MetricWeights = [metricCount]float64{}
	s.MetricWeights[MetricCenter] = 1.0
	s.MinAreaRadiusPix = 40

	track := newTestTrack(t, &s, Rect{0, 0, 100, 100}, "car")

	// Center at (90, 50): 40 px from the prediction, exactly on the fixed
	// radius boundary.
	regions := []Region{NewRegion(Rect{40, 0, 100, 100}, "car", 1)}
	cm := buildCostMatrix([]*Track{track}, regions, nil, &s, testFrameArea)
	assert.InDelta(t, 1.0, cm.Costs[0][0], 1e-9)
}

func TestSizeRatio(t *testing.T) {
	assert.Equal(t, 1.0, sizeRatio(10, 10))
	assert.Equal(t, 0.5, sizeRatio(5, 10))
	assert.Equal(t, 0.5, sizeRatio(10, 5))
	assert.Equal(t, 0.0, sizeRatio(0, 10))
	assert.Equal(t, 0.0, sizeRatio(10, 0))
}
