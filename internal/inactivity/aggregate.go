package inactivity

import (
	"fmt"
	"strings"
	"time"
)

// ReportAggregate accumulates the inactive records of one run in scan order,
// together with the run-level counters both renderers share. Active records
// are classified and dropped immediately, so memory is bounded by the
// inactive subset rather than the directory size.
type ReportAggregate struct {
	Records       []ActivityRecord
	TotalScanned  int
	ThresholdDays int
	Threshold     time.Time // inactivity cutoff date
	WindowStart   time.Time // message-trace lookback start
	WindowEnd     time.Time // message-trace lookback end

	seen map[string]bool
}

// NewReportAggregate derives the threshold date and trace window from the
// configured day counts, anchored at now.
func NewReportAggregate(thresholdDays, windowDays int, now time.Time) *ReportAggregate {
	return &ReportAggregate{
		ThresholdDays: thresholdDays,
		Threshold:     now.AddDate(0, 0, -thresholdDays),
		WindowStart:   now.AddDate(0, 0, -windowDays),
		WindowEnd:     now,
		seen:          make(map[string]bool),
	}
}

// Accumulate counts rec as scanned and appends it when the classifier says
// inactive. Returns true when the record was appended. The primary address
// is the report key: empty or repeated addresses are rejected without
// touching the counters.
func (a *ReportAggregate) Accumulate(rec ActivityRecord) (bool, error) {
	key := strings.ToLower(strings.TrimSpace(rec.PrimaryAddress))
	if key == "" {
		return false, fmt.Errorf("record %q has no primary address", rec.DisplayName)
	}
	if a.seen[key] {
		return false, fmt.Errorf("duplicate primary address %q", rec.PrimaryAddress)
	}
	a.seen[key] = true
	a.TotalScanned++

	if !IsInactive(rec, a.Threshold) {
		return false, nil
	}
	a.Records = append(a.Records, rec)
	return true, nil
}

// InactiveCount returns the number of accumulated inactive records.
func (a *ReportAggregate) InactiveCount() int {
	return len(a.Records)
}

// InactiveRate returns the inactive percentage of all scanned groups,
// 0 when nothing was scanned.
func (a *ReportAggregate) InactiveRate() float64 {
	if a.TotalScanned == 0 {
		return 0
	}
	return float64(len(a.Records)) / float64(a.TotalScanned) * 100
}
