package mot

// FrameStats summarises one Update call for downstream analytics.
type FrameStats struct {
	TracksBefore int // Tracks alive when the frame arrived
	Regions      int // Detections delivered this frame
	Matched      int // Surviving tracks with an assigned region
	Missed       int // Surviving tracks updated in prediction-only mode
	Spawned      int // Tracks created for unmatched regions
	Removed      int // Tracks pruned this frame
}
