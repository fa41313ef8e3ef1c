package mot

import "gonum.org/v1/gonum/mat"

// ObjectType tags a detection with its semantic class ("person", "car", ...).
// The empty type matches any track type during association.
type ObjectType string

// TypeUnknown is the zero ObjectType.
const TypeUnknown ObjectType = ""

// Region is one detection in the current frame. Regions are produced by an
// upstream detector and are read-only inputs for a single Update call.
type Region struct {
	Box        Rect        // Axis-aligned bounding box
	RRect      RotatedRect // Oriented rectangle (center, size, angle)
	Type       ObjectType
	Confidence float64 // Detector confidence [0, 1]
}

// NewRegion builds a Region from an axis-aligned box. The oriented
// rectangle defaults to the unrotated box.
func NewRegion(box Rect, typ ObjectType, confidence float64) Region {
	return Region{
		Box:        box,
		RRect:      RotatedRect{Center: box.Center(), W: box.W, H: box.H},
		Type:       typ,
		Confidence: confidence,
	}
}

// RegionDescriptor is the per-region appearance bundle. It is rebuilt every
// frame and discarded after assignment; tracks retain the descriptor of
// their last matched region.
type RegionDescriptor struct {
	// Hist is a unit-sum concatenated per-channel histogram, or nil when
	// the histogram metric is disabled or the region is degenerate.
	Hist []float64

	// Embedding is the appearance embedding, or nil when no extractor is
	// bound for the region's type. EmbDot caches Embedding·Embedding.
	Embedding *mat.VecDense
	EmbDot    float64
}

// HasHist reports whether a histogram was computed for this region.
func (d RegionDescriptor) HasHist() bool { return len(d.Hist) > 0 }

// HasEmbedding reports whether an embedding was computed for this region.
func (d RegionDescriptor) HasEmbedding() bool { return d.Embedding != nil }
