package mot

import (
	"image"
	"math"
)

// Track is one persistent object identity maintained across frames.
// IDs are strictly increasing across a tracker's lifetime and never
// reused, even after removals. A track exclusively owns its motion
// filter; during the tracker's parallel update pass each track is
// touched by exactly one goroutine.
type Track struct {
	ID uint64

	// LastRegion is the most recent matched detection (or the founding
	// one). Its Type is the track's semantic type for gating.
	LastRegion Region

	// Trace is the bounded history of regions: matched detections on hit
	// frames, filter predictions on miss frames. Oldest entries are
	// dropped past Settings.MaxTraceLength.
	Trace []Region

	// SkippedFrames counts consecutive frames without a matched region.
	SkippedFrames int

	filter         MotionFilter
	lastDescriptor RegionDescriptor

	predicted    Rect // Filter estimate after the last update
	outOfFrame   bool
	staticFrames int
	isStatic     bool
}

// newTrack seeds a track from its founding detection. The founding region
// already reflects the track's state, so new tracks skip the update pass
// of the frame that spawned them.
func newTrack(id uint64, reg Region, desc RegionDescriptor, s *Settings) *Track {
	return &Track{
		ID:             id,
		LastRegion:     reg,
		Trace:          []Region{reg},
		filter:         NewKalmanFilter(reg.Box, s.DeltaTime, s.AccelNoiseMag, s.UseAcceleration),
		lastDescriptor: desc,
		predicted:      reg.Box,
	}
}

// PredictionEllipse returns the search area around the filter's predicted
// position. The semi-axes are at least the supplied minimum radii and
// grow with the filtered velocity; the major axis points along the
// predicted motion direction.
func (tr *Track) PredictionEllipse(minRX, minRY float64) SearchEllipse {
	vx, vy := tr.filter.Velocity()
	return SearchEllipse{
		Center:   tr.filter.Center(),
		SemiX:    math.Max(minRX, 3*math.Abs(vx)),
		SemiY:    math.Max(minRY, 3*math.Abs(vy)),
		AngleRad: math.Atan2(vy, vx),
	}
}

// IsOutOfFrame reports whether the track's predicted position has left
// the frame bounds.
func (tr *Track) IsOutOfFrame() bool { return tr.outOfFrame }

// IsStatic reports whether the track is currently classified static.
func (tr *Track) IsStatic() bool { return tr.isStatic }

// IsStaticFor reports whether the track has been static for more than the
// given number of frames. frames <= 0 disables the timeout.
func (tr *Track) IsStaticFor(frames int) bool {
	return frames > 0 && tr.isStatic && tr.staticFrames > frames
}

// update advances the track for one frame. On a match the detection and
// its descriptor are folded into the state; otherwise the filter coasts
// in prediction-only mode. prevFrame and currFrame feed abandoned-object
// classification inside the motion model and may be nil.
//
// Called from the tracker's parallel update pass: it must not touch any
// state outside this track.
func (tr *Track) update(reg Region, desc RegionDescriptor, matched bool, s *Settings, frameBounds Rect, minStaticFrames int, prevFrame, currFrame image.Image) {
	if matched {
		tr.predicted = tr.filter.Update(reg.Box, true)
		tr.LastRegion = reg
		if desc.HasHist() || desc.HasEmbedding() {
			tr.lastDescriptor = desc
		}
		tr.pushTrace(reg, s.MaxTraceLength)
	} else {
		tr.predicted = tr.filter.Update(Rect{}, false)
		coasted := NewRegion(tr.predicted, tr.LastRegion.Type, 0)
		tr.pushTrace(coasted, s.MaxTraceLength)
	}

	tr.outOfFrame = !frameBounds.Contains(tr.filter.Center())
	tr.checkStatic(minStaticFrames, s.MaxSpeedForStatic, prevFrame, currFrame)
}

// pushTrace appends one region, dropping the oldest past the bound.
func (tr *Track) pushTrace(reg Region, maxLen int) {
	tr.Trace = append(tr.Trace, reg)
	if maxLen > 0 && len(tr.Trace) > maxLen {
		tr.Trace = tr.Trace[len(tr.Trace)-maxLen:]
	}
}

// checkStatic updates the static-object classification: a track whose
// filtered speed stays below maxSpeed for minStaticFrames consecutive
// frames is considered static (abandoned). minStaticFrames <= 0 disables
// the classification. The frame buffers are reserved for appearance-based
// refinement of this decision and are unused by the base filter.
func (tr *Track) checkStatic(minStaticFrames int, maxSpeed float64, _, _ image.Image) {
	if minStaticFrames <= 0 {
		tr.staticFrames = 0
		tr.isStatic = false
		return
	}

	vx, vy := tr.filter.Velocity()
	if math.Hypot(vx, vy) < maxSpeed {
		tr.staticFrames++
	} else {
		tr.staticFrames = 0
	}
	tr.isStatic = tr.staticFrames > minStaticFrames
}

// Predicted returns the filter's current box estimate.
func (tr *Track) Predicted() Rect { return tr.predicted }
