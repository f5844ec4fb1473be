package inactivity

import (
	"fmt"
	"testing"
	"time"
)

func staleRecord(address string) ActivityRecord {
	stamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return ActivityRecord{
		DisplayName:    address,
		PrimaryAddress: address,
		LastModified:   &stamp,
	}
}

func freshRecord(address string, now time.Time) ActivityRecord {
	stamp := now.Add(-24 * time.Hour)
	return ActivityRecord{
		DisplayName:    address,
		PrimaryAddress: address,
		LastModified:   &stamp,
	}
}

func TestNewReportAggregate_Windows(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	agg := NewReportAggregate(90, 10, now)

	if want := now.AddDate(0, 0, -90); !agg.Threshold.Equal(want) {
		t.Errorf("Threshold = %s, want %s", agg.Threshold, want)
	}
	if want := now.AddDate(0, 0, -10); !agg.WindowStart.Equal(want) {
		t.Errorf("WindowStart = %s, want %s", agg.WindowStart, want)
	}
	if !agg.WindowEnd.Equal(now) {
		t.Errorf("WindowEnd = %s, want %s", agg.WindowEnd, now)
	}
}

func TestAccumulate(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("inactive record appended", func(t *testing.T) {
		agg := NewReportAggregate(90, 10, now)
		added, err := agg.Accumulate(staleRecord("old@contoso.com"))
		if err != nil {
			t.Fatalf("Accumulate() error = %v", err)
		}
		if !added || agg.InactiveCount() != 1 || agg.TotalScanned != 1 {
			t.Errorf("added=%v inactive=%d scanned=%d, want true/1/1",
				added, agg.InactiveCount(), agg.TotalScanned)
		}
	})

	t.Run("active record counted but not appended", func(t *testing.T) {
		agg := NewReportAggregate(90, 10, now)
		added, err := agg.Accumulate(freshRecord("fresh@contoso.com", now))
		if err != nil {
			t.Fatalf("Accumulate() error = %v", err)
		}
		if added || agg.InactiveCount() != 0 || agg.TotalScanned != 1 {
			t.Errorf("added=%v inactive=%d scanned=%d, want false/0/1",
				added, agg.InactiveCount(), agg.TotalScanned)
		}
	})

	t.Run("empty address rejected before counting", func(t *testing.T) {
		agg := NewReportAggregate(90, 10, now)
		if _, err := agg.Accumulate(ActivityRecord{DisplayName: "no address"}); err == nil {
			t.Error("Accumulate() error = nil, want rejection")
		}
		if agg.TotalScanned != 0 {
			t.Errorf("TotalScanned = %d, want 0", agg.TotalScanned)
		}
	})

	t.Run("duplicate address rejected case-insensitively", func(t *testing.T) {
		agg := NewReportAggregate(90, 10, now)
		if _, err := agg.Accumulate(staleRecord("Team@Contoso.com")); err != nil {
			t.Fatalf("first Accumulate() error = %v", err)
		}
		if _, err := agg.Accumulate(staleRecord("team@contoso.com")); err == nil {
			t.Error("second Accumulate() error = nil, want duplicate rejection")
		}
		if agg.TotalScanned != 1 {
			t.Errorf("TotalScanned = %d, want 1", agg.TotalScanned)
		}
	})

	t.Run("accumulation order preserved", func(t *testing.T) {
		agg := NewReportAggregate(90, 10, now)
		for i := 0; i < 5; i++ {
			if _, err := agg.Accumulate(staleRecord(fmt.Sprintf("g%d@contoso.com", i))); err != nil {
				t.Fatalf("Accumulate() error = %v", err)
			}
		}
		for i, rec := range agg.Records {
			if want := fmt.Sprintf("g%d@contoso.com", i); rec.PrimaryAddress != want {
				t.Errorf("Records[%d] = %s, want %s", i, rec.PrimaryAddress, want)
			}
		}
	})
}

func TestInactiveRate(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty aggregate", func(t *testing.T) {
		agg := NewReportAggregate(90, 10, now)
		if got := agg.InactiveRate(); got != 0 {
			t.Errorf("InactiveRate() = %v, want 0", got)
		}
	})

	t.Run("ten of forty inactive", func(t *testing.T) {
		agg := NewReportAggregate(90, 10, now)
		for i := 0; i < 10; i++ {
			if _, err := agg.Accumulate(staleRecord(fmt.Sprintf("stale%d@contoso.com", i))); err != nil {
				t.Fatalf("Accumulate() error = %v", err)
			}
		}
		for i := 0; i < 30; i++ {
			if _, err := agg.Accumulate(freshRecord(fmt.Sprintf("fresh%d@contoso.com", i), now)); err != nil {
				t.Fatalf("Accumulate() error = %v", err)
			}
		}
		if got := fmt.Sprintf("%.1f%%", agg.InactiveRate()); got != "25.0%" {
			t.Errorf("InactiveRate() rendered = %q, want %q", got, "25.0%")
		}
	})
}
