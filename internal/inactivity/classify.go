package inactivity

import "time"

// IsInactive reports whether a record shows no activity since the threshold
// date. A missing last-modified timestamp counts as inactive: a group whose
// folder statistics produce no modification signal at all has shown less
// activity than one with a stale-but-present timestamp, and must not be
// skipped as "unknown".
//
// Trace events are never consulted here. The trace lookback window is far
// shorter than the inactivity threshold, so trace absence would misclassify
// groups that were active earlier in the threshold period; trace hits are
// descriptive fields for human review only.
func IsInactive(rec ActivityRecord, threshold time.Time) bool {
	return rec.LastModified == nil || rec.LastModified.Before(threshold)
}
