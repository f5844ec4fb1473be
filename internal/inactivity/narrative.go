package inactivity

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"time"
)

// Document is the assembled narrative report. It is built in full from a
// ReportAggregate before any markup exists, so the structure can be
// inspected in tests and serialization stays a single final step.
type Document struct {
	GeneratedAt     time.Time
	Summary         SummaryBlock
	Sections        []RecordSection
	Recommendations []string
}

// SummaryBlock carries the run-level statistics shown at the top of the
// narrative report.
type SummaryBlock struct {
	TotalScanned  int
	InactiveCount int
	InactiveRate  string // one decimal place, e.g. "25.0%"
	ThresholdDays int
	WindowStart   time.Time
	WindowEnd     time.Time
}

// RecordSection is one self-contained report section per inactive group.
// All fields are pre-rendered strings; absent data already carries its
// placeholder, so the template contains no fallback logic.
type RecordSection struct {
	DisplayName     string
	PrimaryAddress  string
	MemberCount     string
	Members         []string
	Owners          []string
	Created         string
	CreatedAge      string // "123 days ago", empty when timestamp absent
	LastModified    string
	LastModifiedAge string
	InboundTime     string
	InboundFrom     string
	InboundSubject  string
	OutboundTime    string
	OutboundTo      string
	OutboundSubject string
	Hidden          string
	RequireAuth     string
	AcceptOnlyFrom  string
	RejectFrom      string
	Notes           string
	CustomAttr1     string
	CustomAttr2     string
}

// recommendations is the static closing guidance. It is advice for the
// admin reviewing the report, not a computed result.
var recommendations = []string{
	"Confirm with the listed owners whether the group is still needed before removing it.",
	"Groups with no owner or only unresolved owners should be escalated to the service desk for ownership assignment.",
	"Consider hiding confirmed-obsolete groups from address lists for one review cycle before deletion.",
	"Export this report before acting on it; deletions are not reversible through this tool.",
}

// BuildNarrative assembles the document from the aggregate. Day counts are
// derived from now at build time, so rendering the same aggregate later
// shows ages relative to the later date.
func BuildNarrative(agg *ReportAggregate, now time.Time) Document {
	doc := Document{
		GeneratedAt: now,
		Summary: SummaryBlock{
			TotalScanned:  agg.TotalScanned,
			InactiveCount: agg.InactiveCount(),
			InactiveRate:  fmt.Sprintf("%.1f%%", agg.InactiveRate()),
			ThresholdDays: agg.ThresholdDays,
			WindowStart:   agg.WindowStart,
			WindowEnd:     agg.WindowEnd,
		},
		Recommendations: recommendations,
	}

	doc.Sections = make([]RecordSection, 0, len(agg.Records))
	for i := range agg.Records {
		doc.Sections = append(doc.Sections, buildSection(&agg.Records[i], now))
	}
	return doc
}

func buildSection(rec *ActivityRecord, now time.Time) RecordSection {
	sec := RecordSection{
		DisplayName:     rec.DisplayName,
		PrimaryAddress:  rec.PrimaryAddress,
		MemberCount:     formatMemberCount(rec.MemberCount),
		Members:         descriptorLines(rec.Members),
		Owners:          descriptorLines(rec.Owners),
		Created:         formatCreated(rec.Created),
		LastModified:    formatTimestamp(rec.LastModified),
		InboundTime:     formatTraceTime(rec.LastInbound),
		InboundFrom:     formatTraceCounterpart(rec.LastInbound),
		InboundSubject:  formatTraceSubject(rec.LastInbound),
		OutboundTime:    formatTraceTime(rec.LastOutbound),
		OutboundTo:      formatTraceCounterpart(rec.LastOutbound),
		OutboundSubject: formatTraceSubject(rec.LastOutbound),
		Hidden:          formatBool(rec.Hidden),
		RequireAuth:     formatBool(rec.RequireSenderAuth),
		AcceptOnlyFrom:  rec.AcceptOnlyFrom,
		RejectFrom:      rec.RejectFrom,
		Notes:           rec.Notes,
		CustomAttr1:     rec.CustomAttribute1,
		CustomAttr2:     rec.CustomAttribute2,
	}

	// Ages are only attached when the underlying timestamp exists; an
	// absent timestamp must not show as "0 days ago".
	if !rec.Created.IsZero() {
		sec.CreatedAge = formatAge(now, rec.Created)
	}
	if rec.LastModified != nil {
		sec.LastModifiedAge = formatAge(now, *rec.LastModified)
	}
	return sec
}

func descriptorLines(list []Descriptor) []string {
	if len(list) == 0 {
		return []string{NotAvailable}
	}
	lines := make([]string, len(list))
	for i, d := range list {
		if d.Address == "" || d.Address == NotAvailable {
			lines[i] = d.DisplayName
			continue
		}
		lines[i] = fmt.Sprintf("%s <%s>", d.DisplayName, d.Address)
	}
	return lines
}

func formatAge(now, t time.Time) string {
	days := int(math.Floor(now.Sub(t).Hours() / 24))
	return fmt.Sprintf("%d days ago", days)
}

// RenderHTML serializes the document as a single self-contained HTML page.
// Output is byte-identical for the same document; the only run-dependent
// value is the generated-at stamp carried inside the document itself.
func (d Document) RenderHTML(w io.Writer) error {
	return narrativeTmpl.Execute(w, d)
}

var narrativeTmpl = template.Must(template.New("narrative").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Inactive Distribution Group Report</title>
<style>
body { font-family: Segoe UI, Arial, sans-serif; margin: 2em; color: #222; }
h1 { color: #106ebe; }
h2 { color: #106ebe; border-bottom: 1px solid #ddd; padding-bottom: 0.2em; }
table.summary { border-collapse: collapse; margin-bottom: 2em; }
table.summary td { border: 1px solid #ccc; padding: 0.3em 0.8em; }
table.summary td:first-child { background: #f3f3f3; font-weight: bold; }
div.group { border: 1px solid #ddd; margin-bottom: 1.5em; padding: 0.5em 1em; }
dl { display: grid; grid-template-columns: max-content auto; gap: 0.2em 1em; }
dt { font-weight: bold; }
ul { margin: 0.2em 0; padding-left: 1.4em; }
.age { color: #777; }
</style>
</head>
<body>
<h1>Inactive Distribution Group Report</h1>
<p>Generated at {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>

<h2>Summary</h2>
<table class="summary">
<tr><td>Groups scanned</td><td>{{.Summary.TotalScanned}}</td></tr>
<tr><td>Inactive groups</td><td>{{.Summary.InactiveCount}}</td></tr>
<tr><td>Inactive rate</td><td>{{.Summary.InactiveRate}}</td></tr>
<tr><td>Inactivity threshold</td><td>{{.Summary.ThresholdDays}} days</td></tr>
<tr><td>Message trace window</td><td>{{.Summary.WindowStart.Format "2006-01-02"}} to {{.Summary.WindowEnd.Format "2006-01-02"}}</td></tr>
</table>

<h2>Inactive groups</h2>
{{range .Sections}}<div class="group">
<h3>{{.DisplayName}} &lt;{{.PrimaryAddress}}&gt;</h3>
<dl>
<dt>Last modified</dt><dd>{{.LastModified}}{{if .LastModifiedAge}} <span class="age">({{.LastModifiedAge}})</span>{{end}}</dd>
<dt>Created</dt><dd>{{.Created}}{{if .CreatedAge}} <span class="age">({{.CreatedAge}})</span>{{end}}</dd>
<dt>Member count</dt><dd>{{.MemberCount}}</dd>
<dt>Members</dt><dd><ul>{{range .Members}}<li>{{.}}</li>{{end}}</ul></dd>
<dt>Owners</dt><dd><ul>{{range .Owners}}<li>{{.}}</li>{{end}}</ul></dd>
<dt>Last email received</dt><dd>{{.InboundTime}}</dd>
<dt>Received from</dt><dd>{{.InboundFrom}}</dd>
<dt>Received subject</dt><dd>{{.InboundSubject}}</dd>
<dt>Last email sent</dt><dd>{{.OutboundTime}}</dd>
<dt>Sent to</dt><dd>{{.OutboundTo}}</dd>
<dt>Sent subject</dt><dd>{{.OutboundSubject}}</dd>
<dt>Hidden from address lists</dt><dd>{{.Hidden}}</dd>
<dt>Require sender authentication</dt><dd>{{.RequireAuth}}</dd>
<dt>Accept messages only from</dt><dd>{{.AcceptOnlyFrom}}</dd>
<dt>Reject messages from</dt><dd>{{.RejectFrom}}</dd>
<dt>Notes</dt><dd>{{.Notes}}</dd>
<dt>Custom attribute 1</dt><dd>{{.CustomAttr1}}</dd>
<dt>Custom attribute 2</dt><dd>{{.CustomAttr2}}</dd>
</dl>
</div>
{{end}}
<h2>Recommendations</h2>
<ul>
{{range .Recommendations}}<li>{{.}}</li>
{{end}}</ul>
</body>
</html>
`))
