package mot

import (
	"image"
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// histogramBins is the per-channel bin count for appearance histograms.
const histogramBins = 64

// EmbeddingExtractor produces an appearance embedding for one region of a
// frame. Implementations typically wrap a re-identification network; the
// inference backend is opaque to this package and called synchronously.
type EmbeddingExtractor interface {
	Extract(frame image.Image, roi image.Rectangle) ([]float64, error)
}

// descriptorExtractor computes per-region appearance descriptors for the
// metrics enabled in the settings.
type descriptorExtractor struct {
	settings *Settings

	// Types whose missing or failing extractor has already been logged.
	// Gaps degrade the embedding metric locally; they are never fatal.
	logged map[ObjectType]bool
}

func newDescriptorExtractor(s *Settings) *descriptorExtractor {
	return &descriptorExtractor{settings: s, logged: make(map[ObjectType]bool)}
}

// Extract returns one descriptor per region. Degenerate regions produce
// empty descriptors, never an error.
func (de *descriptorExtractor) Extract(frame image.Image, regions []Region) []RegionDescriptor {
	if len(regions) == 0 {
		return nil
	}
	descs := make([]RegionDescriptor, len(regions))

	if de.settings.MetricWeights[MetricHistogram] > 0 {
		for j := range regions {
			descs[j].Hist = regionHistogram(frame, regions[j].Box)
		}
	}

	if de.settings.MetricWeights[MetricEmbedding] > 0 {
		for j := range regions {
			typ := regions[j].Type
			ex := de.settings.extractorFor(typ)
			if ex == nil {
				if !de.logged[typ] {
					de.logged[typ] = true
					log.Printf("mot: no embedding extractor bound for type %q; embedding metric contributes zero", typ)
				}
				continue
			}
			roi := imageROI(frame, regions[j].Box)
			if roi.Empty() {
				continue
			}
			vec, err := ex.Extract(frame, roi)
			if err != nil || len(vec) == 0 {
				if err != nil && !de.logged[typ] {
					de.logged[typ] = true
					log.Printf("mot: embedding extraction failed for type %q: %v", typ, err)
				}
				continue
			}
			v := mat.NewVecDense(len(vec), vec)
			descs[j].Embedding = v
			descs[j].EmbDot = mat.Dot(v, v)
		}
	}

	return descs
}

// imageROI clips a box to the frame bounds and converts it to integer
// pixel coordinates.
func imageROI(frame image.Image, box Rect) image.Rectangle {
	if frame == nil {
		return image.Rectangle{}
	}
	roi := image.Rect(
		int(math.Floor(box.X)), int(math.Floor(box.Y)),
		int(math.Ceil(box.X+box.W)), int(math.Ceil(box.Y+box.H)),
	)
	return roi.Intersect(frame.Bounds())
}

// regionHistogram builds a concatenated 64-bin R/G/B histogram over the
// region's bounding box, normalized to unit sum. Degenerate or fully
// out-of-frame boxes return nil.
func regionHistogram(frame image.Image, box Rect) []float64 {
	roi := imageROI(frame, box)
	if roi.Empty() {
		return nil
	}

	hist := make([]float64, 3*histogramBins)
	for y := roi.Min.Y; y < roi.Max.Y; y++ {
		for x := roi.Min.X; x < roi.Max.X; x++ {
			r, g, b, _ := frame.At(x, y).RGBA()
			// RGBA returns 16-bit channels; fold into histogramBins bins.
			hist[int(r)*histogramBins/0x10000]++
			hist[histogramBins+int(g)*histogramBins/0x10000]++
			hist[2*histogramBins+int(b)*histogramBins/0x10000]++
		}
	}

	if total := floats.Sum(hist); total > 0 {
		floats.Scale(1/total, hist)
	}
	return hist
}

// histDistance is the Bhattacharyya-style distance between two unit-sum
// histograms: sqrt(1 − BC), 0 for identical distributions, 1 for disjoint
// ones. A missing histogram on either side yields the maximum distance.
func histDistance(p, q []float64) float64 {
	if len(p) == 0 || len(q) == 0 || len(p) != len(q) {
		return 1
	}
	bc := 0.0
	for i := range p {
		bc += math.Sqrt(p[i] * q[i])
	}
	if bc > 1 {
		bc = 1 // Rounding guard
	}
	return math.Sqrt(1 - bc)
}

// cosineSimilarity is the cosine of the angle between two embeddings using
// their cached self dot products. When either side has no embedding the
// similarity is 1 (the metric contributes zero, per the extractor-gap
// policy); zero-norm embeddings yield 0 (maximum distance).
func cosineSimilarity(a, b RegionDescriptor) float64 {
	if !a.HasEmbedding() || !b.HasEmbedding() || a.Embedding.Len() != b.Embedding.Len() {
		return 1
	}
	norm := math.Sqrt(a.EmbDot * b.EmbDot)
	if norm <= 0 {
		return 0
	}
	return mat.Dot(a.Embedding, b.Embedding) / norm
}
