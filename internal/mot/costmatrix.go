package mot

import "math"

// Unassigned marks a track with no matched region in an assignment.
const Unassigned = -1

// CostMatrix is the dense tracks×regions dissimilarity matrix for one
// frame. Row i is a track, column j a region. MaxPossibleCost is the
// sentinel written for type-incompatible pairs (the frame area) and the
// feasibility ceiling for the solvers; MaxCost is the running maximum
// over all entries, carried as informational metadata.
type CostMatrix struct {
	Costs           [][]float64
	N               int // Tracks
	M               int // Regions
	MaxPossibleCost float64
	MaxCost         float64
}

// buildCostMatrix combines the weighted distance metrics for every
// (track, region) pair. Incompatible semantic types short-circuit to the
// sentinel; degenerate geometry maps to each metric's maximum distance,
// never to NaN.
func buildCostMatrix(tracks []*Track, regions []Region, descs []RegionDescriptor, s *Settings, maxPossibleCost float64) *CostMatrix {
	cm := &CostMatrix{
		Costs:           make([][]float64, len(tracks)),
		N:               len(tracks),
		M:               len(regions),
		MaxPossibleCost: maxPossibleCost,
	}

	for i, track := range tracks {
		cm.Costs[i] = make([]float64, len(regions))

		// Predicted search area with the configured minimum-radius policy.
		var minRX, minRY float64
		if s.MinAreaRadiusPix < 0 {
			minRX = s.MinAreaRadiusK * track.LastRegion.RRect.W
			minRY = s.MinAreaRadiusK * track.LastRegion.RRect.H
		} else {
			minRX = s.MinAreaRadiusPix
			minRY = s.MinAreaRadiusPix
		}
		ellipse := track.PredictionEllipse(minRX, minRY)

		for j := range regions {
			reg := &regions[j]

			cost := maxPossibleCost
			if s.CheckType(track.LastRegion.Type, reg.Type) {
				cost = 0

				if w := s.MetricWeights[MetricCenter]; w > 0 {
					e := ellipse.NormDistance(reg.RRect.Center)
					cost += w * math.Min(e, 1)
				}

				if w := s.MetricWeights[MetricSize]; w > 0 {
					e := ellipse.NormDistance(reg.RRect.Center)
					if e < 1 {
						dw := sizeRatio(track.LastRegion.RRect.W, reg.RRect.W)
						dh := sizeRatio(track.LastRegion.RRect.H, reg.RRect.H)
						cost += w * (1 - (1-e)*(dw+dh)*0.5)
					} else {
						cost += w
					}
				}

				if w := s.MetricWeights[MetricOverlap]; w > 0 {
					cost += w * (1 - IoU(track.LastRegion.Box, reg.Box))
				}

				if w := s.MetricWeights[MetricHistogram]; w > 0 {
					cost += w * histDistance(track.lastDescriptor.Hist, descAt(descs, j).Hist)
				}

				if w := s.MetricWeights[MetricEmbedding]; w > 0 {
					// Stricter gate than CheckType: embeddings are only
					// comparable within the exact same type. Mismatched
					// types contribute zero here, not the sentinel.
					if reg.Type == track.LastRegion.Type {
						cost += w * (1 - cosineSimilarity(track.lastDescriptor, descAt(descs, j)))
					}
				}
			}

			cm.Costs[i][j] = cost
			if cost > cm.MaxCost {
				cm.MaxCost = cost
			}
		}
	}

	return cm
}

// sizeRatio is the min/max ratio of two extents in [0, 1]; 1 means equal
// size. Zero-size extents yield 0, the maximum size difference.
func sizeRatio(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a < b {
		return a / b
	}
	return b / a
}

// descAt tolerates a nil descriptor slice (no appearance metrics active).
func descAt(descs []RegionDescriptor, j int) RegionDescriptor {
	if j < 0 || j >= len(descs) {
		return RegionDescriptor{}
	}
	return descs[j]
}
