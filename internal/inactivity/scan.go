package inactivity

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"
)

// TraceDirection selects which side of a message trace to query.
type TraceDirection string

const (
	DirectionInbound  TraceDirection = "inbound"
	DirectionOutbound TraceDirection = "outbound"
)

// GroupRef identifies one distribution group in the service.
type GroupRef struct {
	Identity    string
	DisplayName string
}

// GroupSource is the fetch layer for a scan run. Implementations talk to
// the hosted service; every call may fail independently, and the scanner
// decides which failures skip a group and which degrade to sentinels.
type GroupSource interface {
	// ListGroups enumerates all distribution groups. A failure here is a
	// connection failure and aborts the entire run.
	ListGroups(ctx context.Context) ([]GroupRef, error)

	// Attributes fetches the base directory attributes of one group.
	Attributes(ctx context.Context, ref GroupRef) (GroupAttributes, error)

	// LastFolderActivity returns the newest folder-statistics timestamp,
	// or nil when the group's folders carry no modification signal.
	LastFolderActivity(ctx context.Context, ref GroupRef) (*time.Time, error)

	// Members returns the resolved membership of one group.
	Members(ctx context.Context, ref GroupRef) ([]Descriptor, error)

	// ResolveIdentifier resolves one raw owner identifier to a descriptor.
	ResolveIdentifier(ctx context.Context, raw string) (Descriptor, error)

	// Trace returns the message-trace hits for an address within the window.
	Trace(ctx context.Context, address string, direction TraceDirection, start, end time.Time) ([]TraceEvent, error)
}

// SkippedGroup records one group that could not be processed at all.
type SkippedGroup struct {
	Identity string
	Reason   string
}

// ScanResult is the outcome of one scan run: the aggregate consumed by the
// renderers plus the list of groups skipped due to attribute failures.
type ScanResult struct {
	Aggregate *ReportAggregate
	Skipped   []SkippedGroup
}

// Scanner drives the sequential scan: for each group it fetches the
// signals, fuses them, classifies the record, and accumulates inactive
// ones. One group is fully processed before the next begins; the aggregate
// is the only state carried across groups.
type Scanner struct {
	Source GroupSource
	Logger *slog.Logger

	// NameFilter restricts the scan to groups whose display name matches
	// a wildcard pattern (case-insensitive). Empty means all groups.
	NameFilter string

	// Domains restricts the scan to groups whose primary address belongs
	// to one of the listed domains. Empty means all domains.
	Domains []string

	// Progress, when set, is called once per enumerated group before it
	// is processed.
	Progress func(current, total int, name string)
}

// Run scans every group and returns the aggregate plus skip list.
// Only two things abort a run: a failed group enumeration and context
// cancellation. Attribute failures skip the single group; all other signal
// failures are logged and degrade to sentinel values inside the record.
func (s *Scanner) Run(ctx context.Context, thresholdDays, windowDays int) (*ScanResult, error) {
	now := time.Now().UTC()
	agg := NewReportAggregate(thresholdDays, windowDays, now)
	result := &ScanResult{Aggregate: agg}

	groups, err := s.Source.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing distribution groups: %w", err)
	}
	s.Logger.Info("Scanning distribution groups",
		"total", len(groups),
		"thresholdDays", thresholdDays,
		"traceWindowDays", windowDays)

	for i, ref := range groups {
		if err := ctx.Err(); err != nil {
			// The partial result covers the groups processed so far, so
			// callers can still render artifacts for the completed subset.
			return result, fmt.Errorf("scan interrupted: %w", err)
		}
		if s.Progress != nil {
			s.Progress(i+1, len(groups), ref.DisplayName)
		}

		attrs, err := s.Source.Attributes(ctx, ref)
		if err != nil {
			s.Logger.Warn("Skipping group, attribute fetch failed",
				"group", ref.Identity, "error", err)
			result.Skipped = append(result.Skipped, SkippedGroup{
				Identity: ref.Identity,
				Reason:   err.Error(),
			})
			continue
		}

		if !s.matches(attrs) {
			s.Logger.Debug("Group excluded by filter", "group", attrs.PrimaryAddress)
			continue
		}

		bundle := s.collect(ctx, ref, attrs, agg.WindowStart, agg.WindowEnd)

		rec, err := Fuse(attrs, bundle)
		if err != nil {
			s.Logger.Warn("Skipping group, fusion rejected record",
				"group", ref.Identity, "error", err)
			result.Skipped = append(result.Skipped, SkippedGroup{
				Identity: ref.Identity,
				Reason:   err.Error(),
			})
			continue
		}

		added, err := agg.Accumulate(rec)
		if err != nil {
			s.Logger.Warn("Skipping group, not accumulated",
				"group", rec.PrimaryAddress, "error", err)
			result.Skipped = append(result.Skipped, SkippedGroup{
				Identity: ref.Identity,
				Reason:   err.Error(),
			})
			continue
		}
		if added {
			s.Logger.Debug("Group classified inactive", "group", rec.PrimaryAddress)
		}
	}

	s.Logger.Info("Scan complete",
		"processed", agg.TotalScanned,
		"inactive", agg.InactiveCount(),
		"skipped", len(result.Skipped))
	return result, nil
}

// collect fetches the optional signals for one group. Each failure is
// logged as a warning and recorded in the bundle; none aborts the group.
func (s *Scanner) collect(ctx context.Context, ref GroupRef, attrs GroupAttributes, windowStart, windowEnd time.Time) SignalBundle {
	var bundle SignalBundle

	lastModified, err := s.Source.LastFolderActivity(ctx, ref)
	if err != nil {
		s.Logger.Warn("Folder statistics unavailable", "group", ref.Identity, "error", err)
		bundle.LastModifiedErr = err
	} else {
		bundle.LastModified = lastModified
	}

	members, err := s.Source.Members(ctx, ref)
	if err != nil {
		s.Logger.Warn("Membership unavailable", "group", ref.Identity, "error", err)
		bundle.MembersErr = err
	} else {
		bundle.Members = members
	}

	for _, raw := range attrs.ManagedBy {
		desc, err := s.Source.ResolveIdentifier(ctx, raw)
		if err != nil {
			s.Logger.Warn("Owner resolution failed", "group", ref.Identity, "owner", raw, "error", err)
		}
		bundle.Owners = append(bundle.Owners, OwnerResolution{Raw: raw, Descriptor: desc, Err: err})
	}

	inbound, err := s.Source.Trace(ctx, attrs.PrimaryAddress, DirectionInbound, windowStart, windowEnd)
	if err != nil {
		s.Logger.Warn("Inbound trace unavailable", "group", ref.Identity, "error", err)
		bundle.InboundErr = err
	} else {
		bundle.Inbound = inbound
	}

	outbound, err := s.Source.Trace(ctx, attrs.PrimaryAddress, DirectionOutbound, windowStart, windowEnd)
	if err != nil {
		s.Logger.Warn("Outbound trace unavailable", "group", ref.Identity, "error", err)
		bundle.OutboundErr = err
	} else {
		bundle.Outbound = outbound
	}

	return bundle
}

// matches applies the name filter and domain allow-list.
func (s *Scanner) matches(attrs GroupAttributes) bool {
	if s.NameFilter != "" && !matchName(s.NameFilter, attrs.DisplayName) {
		return false
	}
	if len(s.Domains) > 0 {
		at := strings.LastIndex(attrs.PrimaryAddress, "@")
		if at < 0 {
			return false
		}
		domain := attrs.PrimaryAddress[at+1:]
		allowed := false
		for _, d := range s.Domains {
			if strings.EqualFold(domain, d) {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	return true
}

// matchName matches a display name against a case-insensitive wildcard
// pattern. Patterns without wildcard characters match as substrings.
func matchName(pattern, name string) bool {
	pattern = strings.ToLower(pattern)
	name = strings.ToLower(name)
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.Contains(name, pattern)
	}
	ok, err := path.Match(pattern, name)
	if err != nil {
		// Malformed pattern: fall back to substring matching
		return strings.Contains(name, strings.Trim(pattern, "*?["))
	}
	return ok
}
