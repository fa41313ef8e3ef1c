package mot

import (
	"image"
	"math"
	"runtime"
	"sync"
)

// Tracker stitches per-frame detections into persistent tracks. It is the
// single writer of its track collection: exactly one Update call drives
// one frame at a time, and the only intra-frame concurrency is the
// fan-out of the per-track update pass.
type Tracker struct {
	settings  Settings
	solver    AssignmentSolver
	extractor *descriptorExtractor

	tracks []*Track
	nextID uint64

	prevFrame      image.Image
	lastAssignment []int
	lastStats      FrameStats

	mu sync.RWMutex
}

// NewTracker validates the settings and constructs a tracker. An
// unrecognized assignment strategy or invalid option is a configuration
// error: no partial tracker is produced.
func NewTracker(settings Settings) (*Tracker, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	solver, err := NewAssignmentSolver(settings.Solver)
	if err != nil {
		return nil, err
	}
	t := &Tracker{settings: settings, solver: solver}
	t.extractor = newDescriptorExtractor(&t.settings)
	return t, nil
}

// Update advances the tracker by one frame: extract descriptors, build
// the cost matrix, solve the assignment, clean, prune, spawn, then run
// the parallel per-track update. The frame is retained as the previous
// frame for the next call. A frame is atomic from the caller's
// perspective: there is no cancellation or partial result.
func (t *Tracker) Update(regions []Region, currFrame image.Image, fps float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.updateTrackingState(regions, currFrame, fps)
	t.prevFrame = currFrame
}

func (t *Tracker) updateTrackingState(regions []Region, currFrame image.Image, fps float64) {
	stats := FrameStats{TracksBefore: len(t.tracks), Regions: len(regions)}

	assignment := make([]int, len(t.tracks))
	for i := range assignment {
		assignment[i] = Unassigned
	}

	descs := t.extractor.Extract(currFrame, regions)

	bounds := frameRect(currFrame)
	maxPossibleCost := bounds.W * bounds.H

	if len(t.tracks) > 0 {
		cm := buildCostMatrix(t.tracks, regions, descs, &t.settings, maxPossibleCost)
		if len(regions) > 0 {
			assignment = t.solver.Solve(cm)
		}

		// Demote matches above the distance threshold and advance skip
		// counters for every track left without a region.
		for i := range assignment {
			if assignment[i] != Unassigned {
				if cm.Costs[i][assignment[i]] > t.settings.DistThreshold {
					assignment[i] = Unassigned
					t.tracks[i].SkippedFrames++
				}
			} else {
				t.tracks[i].SkippedFrames++
			}
		}

		// Prune, compacting tracks and assignment in lockstep so the
		// assignment array stays index-aligned for the rest of the frame.
		staticTimeout := int(math.Round(fps * (t.settings.MaxStaticTimeSec - t.settings.MinStaticTimeSec)))
		keep := 0
		for i := 0; i < len(t.tracks); i++ {
			tr := t.tracks[i]
			if tr.SkippedFrames > t.settings.MaxSkippedFrames ||
				(t.settings.OutOfFrameRemoval && tr.IsOutOfFrame()) ||
				tr.IsStaticFor(staticTimeout) {
				stats.Removed++
				continue
			}
			t.tracks[keep] = tr
			assignment[keep] = assignment[i]
			keep++
		}
		t.tracks = t.tracks[:keep]
		assignment = assignment[:keep]
	}

	// Spawn new tracks for regions absent from the assignment. Appended
	// after all survivors and excluded from this frame's update pass.
	taken := make(map[int]bool, len(assignment))
	for _, j := range assignment {
		if j != Unassigned {
			taken[j] = true
		}
	}
	for j := range regions {
		if !taken[j] {
			t.tracks = append(t.tracks, newTrack(t.nextID, regions[j], descAt(descs, j), &t.settings))
			t.nextID++
			stats.Spawned++
		}
	}

	// Parallel update of the surviving pre-spawn tracks. The track slice
	// shape is frozen here: all structural mutation happened above, and
	// each goroutine owns exactly one track.
	minStaticFrames := 0
	if t.settings.UseAbandonedDetection {
		minStaticFrames = int(math.Round(fps * t.settings.MinStaticTimeSec))
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i := range assignment {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			tr := t.tracks[i]
			if j := assignment[i]; j != Unassigned {
				tr.SkippedFrames = 0
				tr.update(regions[j], descAt(descs, j), true, &t.settings, bounds, minStaticFrames, t.prevFrame, currFrame)
			} else {
				// Static time only accumulates over observed frames: a miss
				// resets the classification so an occluded track is never
				// removed as abandoned.
				tr.update(Region{}, RegionDescriptor{}, false, &t.settings, bounds, 0, t.prevFrame, currFrame)
			}
		}(i)
	}
	wg.Wait()

	for _, j := range assignment {
		if j != Unassigned {
			stats.Matched++
		} else {
			stats.Missed++
		}
	}

	t.lastAssignment = assignment
	t.lastStats = stats
}

// frameRect returns the frame bounds as a Rect; nil frames yield an empty
// rect, which maps every cost to the sentinel and every track out of
// frame.
func frameRect(frame image.Image) Rect {
	if frame == nil {
		return Rect{}
	}
	b := frame.Bounds()
	return Rect{
		X: float64(b.Min.X),
		Y: float64(b.Min.Y),
		W: float64(b.Dx()),
		H: float64(b.Dy()),
	}
}

// Tracks returns a snapshot of the current track collection in stable
// (spawn) order. The returned slice is a copy; the tracks themselves are
// shared and must not be mutated by callers.
func (t *Tracker) Tracks() []*Track {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*Track, len(t.tracks))
	copy(out, t.tracks)
	return out
}

// TrackCount returns the number of live tracks.
func (t *Tracker) TrackCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.tracks)
}

// LastAssignment returns a copy of the track-to-region assignment from
// the most recent Update, indexed by surviving pre-spawn track order.
func (t *Tracker) LastAssignment() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]int, len(t.lastAssignment))
	copy(out, t.lastAssignment)
	return out
}

// LastFrameStats returns the per-frame counters from the most recent
// Update call.
func (t *Tracker) LastFrameStats() FrameStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastStats
}
