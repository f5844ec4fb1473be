package inactivity

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestRenderTable_HeaderOnlyWhenEmpty(t *testing.T) {
	agg := NewReportAggregate(90, 10, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := RenderTable(&buf, agg); err != nil {
		t.Fatalf("RenderTable() error = %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count = %d, want header only", len(rows))
	}
	if len(rows[0]) != len(tableColumns) {
		t.Errorf("column count = %d, want %d", len(rows[0]), len(tableColumns))
	}
}

func TestRenderTable_SentinelsAndMultiValueCells(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	agg := NewReportAggregate(90, 10, now)

	rec := ActivityRecord{
		DisplayName:    "Old Team",
		PrimaryAddress: "oldteam@contoso.com",
		MemberCount:    2,
		Members: []Descriptor{
			{DisplayName: "Alice", Address: "alice@contoso.com"},
			{DisplayName: "Bob", Address: "bob@contoso.com"},
		},
		Owners: []Descriptor{
			{DisplayName: "ghost" + unresolvedSuffix, Address: NotAvailable},
		},
	}
	if _, err := agg.Accumulate(rec); err != nil {
		t.Fatalf("Accumulate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := RenderTable(&buf, agg); err != nil {
		t.Fatalf("RenderTable() error = %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want header plus one record", len(rows))
	}

	cell := func(column string) string {
		for i, name := range rows[0] {
			if name == column {
				return rows[1][i]
			}
		}
		t.Fatalf("column %q not found", column)
		return ""
	}

	if got := cell("Members"); got != "Alice <alice@contoso.com>\nBob <bob@contoso.com>" {
		t.Errorf("Members cell = %q", got)
	}
	if got := cell("Owners"); got != "ghost"+unresolvedSuffix {
		t.Errorf("Owners cell = %q", got)
	}
	if got := cell("LastModified"); got != NotAvailable {
		t.Errorf("LastModified cell = %q, want %q", got, NotAvailable)
	}
	if got := cell("LastEmailReceived"); got != NoActivity {
		t.Errorf("LastEmailReceived cell = %q, want %q", got, NoActivity)
	}
	if got := cell("LastReceivedFrom"); got != NotAvailable {
		t.Errorf("LastReceivedFrom cell = %q, want %q", got, NotAvailable)
	}
	if got := cell("HiddenFromAddressLists"); got != "False" {
		t.Errorf("HiddenFromAddressLists cell = %q, want False", got)
	}
}

func TestRenderTable_Deterministic(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	agg := NewReportAggregate(90, 10, now)

	modified := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	inbound := TraceEvent{
		Timestamp:   now.Add(-48 * time.Hour),
		Counterpart: "sender@fabrikam.com",
		Subject:     "FYI",
	}
	rec := ActivityRecord{
		DisplayName:    "Archive List",
		PrimaryAddress: "archive@contoso.com",
		MemberCount:    -1,
		Members:        []Descriptor{membersUnavailable},
		LastModified:   &modified,
		LastInbound:    &inbound,
		Notes:          "kept for audit",
	}
	if _, err := agg.Accumulate(rec); err != nil {
		t.Fatalf("Accumulate() error = %v", err)
	}

	var first, second bytes.Buffer
	if err := RenderTable(&first, agg); err != nil {
		t.Fatalf("first RenderTable() error = %v", err)
	}
	if err := RenderTable(&second, agg); err != nil {
		t.Fatalf("second RenderTable() error = %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two renders of the same aggregate differ")
	}
	if !strings.Contains(first.String(), "2024-03-15 09:30:00") {
		t.Errorf("output missing formatted LastModified:\n%s", first.String())
	}
}
