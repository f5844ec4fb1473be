package inactivity

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// tableColumns is the fixed column order of the tabular artifact.
// Multi-valued cells (Members, Owners) are newline-joined; encoding/csv
// quotes embedded newlines and commas with full fidelity.
var tableColumns = []string{
	"DisplayName",
	"PrimarySmtpAddress",
	"MemberCount",
	"Members",
	"Owners",
	"LastModified",
	"WhenCreated",
	"LastEmailReceived",
	"LastReceivedFrom",
	"LastReceivedSubject",
	"LastEmailSent",
	"LastSentTo",
	"LastSentSubject",
	"HiddenFromAddressLists",
	"RequireSenderAuthentication",
	"AcceptMessagesOnlyFrom",
	"RejectMessagesFrom",
	"Notes",
	"CustomAttribute1",
	"CustomAttribute2",
}

// RenderTable writes the tabular artifact: the fixed header plus one row per
// inactive record, in accumulation order. The CSV deliberately carries no
// summary rows; run-level statistics belong to the narrative artifact.
// Output depends only on the aggregate contents.
func RenderTable(w io.Writer, agg *ReportAggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableColumns); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for i := range agg.Records {
		if err := cw.Write(tableRow(&agg.Records[i])); err != nil {
			return fmt.Errorf("writing report row for %s: %w", agg.Records[i].PrimaryAddress, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func tableRow(rec *ActivityRecord) []string {
	return []string{
		rec.DisplayName,
		rec.PrimaryAddress,
		formatMemberCount(rec.MemberCount),
		joinDescriptors(rec.Members),
		joinDescriptors(rec.Owners),
		formatTimestamp(rec.LastModified),
		formatCreated(rec.Created),
		formatTraceTime(rec.LastInbound),
		formatTraceCounterpart(rec.LastInbound),
		formatTraceSubject(rec.LastInbound),
		formatTraceTime(rec.LastOutbound),
		formatTraceCounterpart(rec.LastOutbound),
		formatTraceSubject(rec.LastOutbound),
		formatBool(rec.Hidden),
		formatBool(rec.RequireSenderAuth),
		rec.AcceptOnlyFrom,
		rec.RejectFrom,
		rec.Notes,
		rec.CustomAttribute1,
		rec.CustomAttribute2,
	}
}

// joinDescriptors renders one "Name <address>" line per descriptor.
// Descriptors without an address (unresolved owners, the membership
// sentinel) render their display name alone.
func joinDescriptors(list []Descriptor) string {
	if len(list) == 0 {
		return NotAvailable
	}
	lines := make([]string, len(list))
	for i, d := range list {
		if d.Address == "" || d.Address == NotAvailable {
			lines[i] = d.DisplayName
			continue
		}
		lines[i] = fmt.Sprintf("%s <%s>", d.DisplayName, d.Address)
	}
	return strings.Join(lines, "\n")
}

func formatMemberCount(n int) string {
	if n < 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%d", n)
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func formatTraceTime(ev *TraceEvent) string {
	if ev == nil {
		return NoActivity
	}
	return ev.Timestamp.UTC().Format("2006-01-02 15:04:05")
}

func formatTraceCounterpart(ev *TraceEvent) string {
	if ev == nil {
		return NotAvailable
	}
	return ev.Counterpart
}

func formatTraceSubject(ev *TraceEvent) string {
	if ev == nil {
		return NotAvailable
	}
	return ev.Subject
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
