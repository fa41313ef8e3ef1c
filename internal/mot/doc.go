// Package mot implements multi-object tracking by detection: per-frame
// association of detected regions with persistent track identities.
//
// Responsibilities: appearance descriptor extraction, multi-metric cost
// matrix construction, optimal (Hungarian) and greedy assignment solving,
// and track lifecycle (creation, skip-frame survival, out-of-frame and
// static-timeout removal, parallel per-track state update).
// Key types: Tracker, Track, Region, Settings.
//
// Object detection, frame decoding and embedding inference are external
// collaborators: detections arrive as Regions, frames as image.Image, and
// embedding networks behind the EmbeddingExtractor interface.
package mot
