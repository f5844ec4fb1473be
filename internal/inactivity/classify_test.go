package inactivity

import (
	"math/rand"
	"testing"
	"time"
)

func TestIsInactive(t *testing.T) {
	threshold := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	before := threshold.Add(-time.Hour)
	after := threshold.Add(time.Hour)

	tests := []struct {
		name string
		rec  ActivityRecord
		want bool
	}{
		{"absent timestamp", ActivityRecord{}, true},
		{"modified before threshold", ActivityRecord{LastModified: &before}, true},
		{"modified after threshold", ActivityRecord{LastModified: &after}, false},
		{"modified exactly at threshold", ActivityRecord{LastModified: &threshold}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInactive(tt.rec, threshold); got != tt.want {
				t.Errorf("IsInactive() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Trace hits are report context only; a recent message must not rescue a
// group whose folder statistics are stale or absent.
func TestIsInactive_TraceActivityIgnored(t *testing.T) {
	threshold := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	recent := TraceEvent{Timestamp: threshold.Add(24 * time.Hour), Subject: "still used"}

	rec := ActivityRecord{
		LastInbound:  &recent,
		LastOutbound: &recent,
	}
	if !IsInactive(rec, threshold) {
		t.Error("IsInactive() = false, want true regardless of trace hits")
	}
}

func TestIsInactive_RandomizedConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		threshold := base.AddDate(0, 0, rng.Intn(365))
		stamp := base.AddDate(0, 0, rng.Intn(730)-180)

		rec := ActivityRecord{LastModified: &stamp}
		got := IsInactive(rec, threshold)
		want := stamp.Before(threshold)
		if got != want {
			t.Fatalf("IsInactive(modified=%s, threshold=%s) = %v, want %v",
				stamp.Format(time.DateOnly), threshold.Format(time.DateOnly), got, want)
		}
	}
}
