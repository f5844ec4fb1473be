package inactivity

import (
	"fmt"
	"strings"
)

// Fuse merges the base attributes and the fetched signal bundle into one
// ActivityRecord. Fusion is pure: every fetch already happened, and any
// per-signal failure inside the bundle degrades to its sentinel value
// rather than aborting the record.
//
// The only hard requirement is a non-empty primary address, which serves
// as the report key downstream.
func Fuse(attrs GroupAttributes, bundle SignalBundle) (ActivityRecord, error) {
	if strings.TrimSpace(attrs.PrimaryAddress) == "" {
		return ActivityRecord{}, fmt.Errorf("group %q has no primary SMTP address", attrs.DisplayName)
	}

	rec := ActivityRecord{
		DisplayName:       attrs.DisplayName,
		PrimaryAddress:    strings.TrimSpace(attrs.PrimaryAddress),
		Created:           attrs.Created,
		Hidden:            attrs.Hidden,
		RequireSenderAuth: attrs.RequireSenderAuth,
		AcceptOnlyFrom:    strings.Join(attrs.AcceptOnlyFrom, "; "),
		RejectFrom:        strings.Join(attrs.RejectFrom, "; "),
		Notes:             attrs.Notes,
		CustomAttribute1:  attrs.CustomAttribute1,
		CustomAttribute2:  attrs.CustomAttribute2,
	}

	// Membership: a failed fetch substitutes the distinguished descriptor
	// and an unknown count, so reports show "unavailable" rather than an
	// empty group.
	if bundle.MembersErr != nil {
		rec.Members = []Descriptor{membersUnavailable}
		rec.MemberCount = -1
	} else {
		rec.Members = append([]Descriptor(nil), bundle.Members...)
		rec.MemberCount = len(bundle.Members)
	}

	// Ownership: one descriptor per raw identifier. Resolution failures
	// keep their slot with an (unresolved) marker, never silent loss.
	rec.Owners = make([]Descriptor, 0, len(bundle.Owners))
	for _, or := range bundle.Owners {
		if or.Err != nil {
			rec.Owners = append(rec.Owners, Descriptor{
				DisplayName: or.Raw + unresolvedSuffix,
				Address:     NotAvailable,
			})
			continue
		}
		rec.Owners = append(rec.Owners, or.Descriptor)
	}

	// Folder statistics pass through as-is. A failed fetch leaves the
	// timestamp absent, which the classifier treats as inactive.
	if bundle.LastModifiedErr == nil {
		rec.LastModified = bundle.LastModified
	}

	if bundle.InboundErr == nil {
		rec.LastInbound = newestHit(bundle.Inbound)
	}
	if bundle.OutboundErr == nil {
		rec.LastOutbound = newestHit(bundle.Outbound)
	}

	return rec, nil
}

// newestHit selects the trace hit with the greatest timestamp.
// Equal timestamps keep the first-seen hit.
func newestHit(hits []TraceEvent) *TraceEvent {
	var best *TraceEvent
	for i := range hits {
		if best == nil || hits[i].Timestamp.After(best.Timestamp) {
			best = &hits[i]
		}
	}
	if best == nil {
		return nil
	}
	hit := *best
	return &hit
}
