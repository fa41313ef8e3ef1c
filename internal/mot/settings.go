package mot

import "fmt"

// SolverKind selects the assignment strategy at construction time.
type SolverKind string

const (
	// SolverHungarian finds the global minimum-cost matching in O(n³).
	SolverHungarian SolverKind = "hungarian"
	// SolverGreedy iteratively picks the cheapest remaining pair. Faster,
	// not globally optimal.
	SolverGreedy SolverKind = "greedy"
)

// Metric indexes the per-metric weights in Settings.MetricWeights.
type Metric int

const (
	MetricCenter    Metric = iota // Normalized center distance from the search ellipse
	MetricSize                    // Width/height similarity inside the ellipse
	MetricOverlap                 // 1 − IoU of last box vs region box
	MetricHistogram               // Bhattacharyya-style histogram distance
	MetricEmbedding               // 1 − cosine similarity of embeddings
	metricCount
)

// Settings configures a Tracker. A metric weight of zero disables that
// metric entirely, including its descriptor computation.
type Settings struct {
	Solver SolverKind

	// MetricWeights holds one weight per Metric, indexed by the Metric
	// constants. The per-pair cost is the weighted sum of active metrics.
	MetricWeights [metricCount]float64

	// DistThreshold demotes solver matches whose cost exceeds it.
	DistThreshold float64

	// Removal heuristics.
	MaxSkippedFrames      int     // Consecutive unmatched frames before removal
	OutOfFrameRemoval     bool    // Remove tracks whose prediction leaves the frame
	UseAbandonedDetection bool    // Enable static-object classification
	MinStaticTimeSec      float64 // Seconds below MaxSpeedForStatic before a track is static
	MaxStaticTimeSec      float64 // Seconds of static time before removal
	MaxSpeedForStatic     float64 // Filtered speed (px/frame) under which a track counts as static

	// MaxTraceLength bounds each track's stored trace; the oldest entry is
	// dropped once the bound is exceeded.
	MaxTraceLength int

	// Search ellipse minimum-radius policy: a fixed pixel radius when
	// MinAreaRadiusPix >= 0, otherwise MinAreaRadiusK times the last
	// region's width/height.
	MinAreaRadiusPix float64
	MinAreaRadiusK   float64

	// Motion filter options.
	UseAcceleration bool    // Model acceleration in addition to velocity
	DeltaTime       float64 // Filter time step (frames are DeltaTime apart)
	AccelNoiseMag   float64 // Process noise magnitude

	nearTypes  map[ObjectType]map[ObjectType]bool
	extractors map[ObjectType]EmbeddingExtractor
}

// DefaultSettings returns a working geometric-only configuration: center and
// size metrics active, appearance metrics disabled.
func DefaultSettings() Settings {
	s := Settings{
		Solver:            SolverHungarian,
		DistThreshold:     0.8,
		MaxSkippedFrames:  25,
		MaxTraceLength:    50,
		MinStaticTimeSec:  5,
		MaxStaticTimeSec:  25,
		MaxSpeedForStatic: 10,
		MinAreaRadiusPix:  -1,
		MinAreaRadiusK:    0.8,
		DeltaTime:         0.4,
		AccelNoiseMag:     0.2,
	}
	s.MetricWeights[MetricCenter] = 0.5
	s.MetricWeights[MetricSize] = 0.5
	return s
}

// AddNearType declares the region type b assignable to tracks of type a.
// The relation is directional; pass symmetric to register both directions.
func (s *Settings) AddNearType(a, b ObjectType, symmetric bool) {
	if s.nearTypes == nil {
		s.nearTypes = make(map[ObjectType]map[ObjectType]bool)
	}
	if s.nearTypes[a] == nil {
		s.nearTypes[a] = make(map[ObjectType]bool)
	}
	s.nearTypes[a][b] = true
	if symmetric {
		if s.nearTypes[b] == nil {
			s.nearTypes[b] = make(map[ObjectType]bool)
		}
		s.nearTypes[b][a] = true
	}
}

// CheckType reports whether a region of type regionType may be assigned to
// a track whose last region has type trackType. Equal or unknown types are
// always compatible; everything else requires a declared near-type.
func (s *Settings) CheckType(trackType, regionType ObjectType) bool {
	if trackType == regionType || trackType == TypeUnknown || regionType == TypeUnknown {
		return true
	}
	return s.nearTypes[trackType][regionType]
}

// BindExtractor registers an embedding extractor for one region type.
// Types without a binding contribute zero to the embedding metric.
func (s *Settings) BindExtractor(typ ObjectType, ex EmbeddingExtractor) {
	if s.extractors == nil {
		s.extractors = make(map[ObjectType]EmbeddingExtractor)
	}
	s.extractors[typ] = ex
}

func (s *Settings) extractorFor(typ ObjectType) EmbeddingExtractor {
	return s.extractors[typ]
}

// validate rejects configurations that cannot produce a working tracker.
func (s *Settings) validate() error {
	switch s.Solver {
	case SolverHungarian, SolverGreedy:
	default:
		return fmt.Errorf("mot: unknown assignment solver %q", s.Solver)
	}
	for m, w := range s.MetricWeights {
		if w < 0 {
			return fmt.Errorf("mot: metric %d has negative weight %v", m, w)
		}
	}
	if s.MaxSkippedFrames < 0 {
		return fmt.Errorf("mot: MaxSkippedFrames must be >= 0, got %d", s.MaxSkippedFrames)
	}
	if s.MaxTraceLength < 1 {
		return fmt.Errorf("mot: MaxTraceLength must be >= 1, got %d", s.MaxTraceLength)
	}
	if s.DeltaTime <= 0 {
		return fmt.Errorf("mot: DeltaTime must be > 0, got %v", s.DeltaTime)
	}
	return nil
}
