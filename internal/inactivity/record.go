// Package inactivity implements the distribution-group inactivity pipeline:
// it fuses independently fetched per-group signals (folder statistics,
// membership, ownership, message-trace hits, directory attributes) into one
// normalized activity record per group, classifies each record against a
// day-count threshold, and renders the inactive set as a CSV table and an
// HTML narrative report.
//
// The package performs no I/O of its own. All service calls happen behind
// the GroupSource interface; fusion, classification, and rendering are pure
// functions over already-fetched data.
package inactivity

import "time"

// Placeholder values for report cells. Absent data must never render as an
// empty string, so a reader can tell "no data" from "empty value".
const (
	// NotAvailable marks a field for which no data could be obtained.
	NotAvailable = "N/A"
	// NoActivity marks trace fields with no hit inside the lookback window.
	NoActivity = "No activity in window"
)

// unresolvedSuffix marks owner identifiers that failed directory resolution.
const unresolvedSuffix = " (unresolved)"

// membersUnavailable is the distinguished descriptor substituted for the
// whole member list when the membership fetch failed.
var membersUnavailable = Descriptor{DisplayName: "Unable to retrieve members", Address: NotAvailable}

// Descriptor identifies a directory recipient by display name and SMTP address.
type Descriptor struct {
	DisplayName string
	Address     string
}

// TraceEvent is a single message-trace hit for a group within the lookback
// window. Counterpart is the sender for inbound hits and the recipient for
// outbound hits.
type TraceEvent struct {
	Timestamp   time.Time
	Counterpart string
	Subject     string
}

// GroupAttributes are the base directory attributes of a distribution group,
// fetched in a single call. When this fetch fails the group is skipped
// entirely; every other signal failure degrades to a sentinel instead.
type GroupAttributes struct {
	DisplayName       string
	PrimaryAddress    string
	Created           time.Time
	Hidden            bool // hidden from address lists
	RequireSenderAuth bool
	AcceptOnlyFrom    []string
	RejectFrom        []string
	ManagedBy         []string // raw owner identifiers, resolved during fetch
	Notes             string
	CustomAttribute1  string
	CustomAttribute2  string
}

// OwnerResolution carries one raw owner identifier together with the outcome
// of its directory lookup. Failed lookups keep their slot so fusion never
// shortens the owner list.
type OwnerResolution struct {
	Raw        string
	Descriptor Descriptor
	Err        error
}

// SignalBundle groups the independently fetched signals for one group.
// Each fetch may fail on its own; the error rides alongside the value and
// fusion substitutes the matching sentinel.
type SignalBundle struct {
	// LastModified is the newest folder-statistics timestamp, nil when the
	// group's folders carry no modification signal at all.
	LastModified    *time.Time
	LastModifiedErr error

	Members    []Descriptor
	MembersErr error

	Owners []OwnerResolution

	Inbound    []TraceEvent
	InboundErr error

	Outbound    []TraceEvent
	OutboundErr error
}

// ActivityRecord is the fused, normalized view of one group's signals.
// Records are immutable after Fuse returns them; PrimaryAddress is the
// report key and is unique within a run.
type ActivityRecord struct {
	DisplayName    string
	PrimaryAddress string

	// MemberCount is -1 when membership could not be retrieved.
	MemberCount int
	Members     []Descriptor
	Owners      []Descriptor

	LastModified *time.Time
	Created      time.Time

	LastInbound  *TraceEvent
	LastOutbound *TraceEvent

	Hidden            bool
	RequireSenderAuth bool
	AcceptOnlyFrom    string
	RejectFrom        string
	Notes             string
	CustomAttribute1  string
	CustomAttribute2  string
}
