package exo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"exoadmintool/internal/inactivity"
)

// Directory exposes the cmdlet surface used by the scan and convert
// workflows. It satisfies inactivity.GroupSource.
type Directory struct {
	client *Client
}

// NewDirectory wraps a cmdlet client.
func NewDirectory(client *Client) *Directory {
	return &Directory{client: client}
}

// distributionGroupRow mirrors the Get-DistributionGroup output fields the
// scan consumes.
type distributionGroupRow struct {
	Identity                           string   `json:"Identity"`
	ExternalDirectoryObjectID          string   `json:"ExternalDirectoryObjectId"`
	DisplayName                        string   `json:"DisplayName"`
	PrimarySMTPAddress                 string   `json:"PrimarySmtpAddress"`
	WhenCreatedUTC                     string   `json:"WhenCreatedUTC"`
	HiddenFromAddressListsEnabled      bool     `json:"HiddenFromAddressListsEnabled"`
	RequireSenderAuthenticationEnabled bool     `json:"RequireSenderAuthenticationEnabled"`
	AcceptMessagesOnlyFrom             []string `json:"AcceptMessagesOnlyFrom"`
	RejectMessagesFrom                 []string `json:"RejectMessagesFrom"`
	ManagedBy                          []string `json:"ManagedBy"`
	Notes                              string   `json:"Notes"`
	CustomAttribute1                   string   `json:"CustomAttribute1"`
	CustomAttribute2                   string   `json:"CustomAttribute2"`
}

func (r *distributionGroupRow) identity() string {
	if r.ExternalDirectoryObjectID != "" {
		return r.ExternalDirectoryObjectID
	}
	return r.Identity
}

// ListGroups enumerates every distribution group in the tenant.
func (d *Directory) ListGroups(ctx context.Context) ([]inactivity.GroupRef, error) {
	rows, err := d.client.InvokeCommand(ctx, "Get-DistributionGroup", map[string]any{
		"ResultSize": "Unlimited",
	})
	if err != nil {
		return nil, err
	}

	refs := make([]inactivity.GroupRef, 0, len(rows))
	for _, raw := range rows {
		var row distributionGroupRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("parsing distribution group row: %w", err)
		}
		refs = append(refs, inactivity.GroupRef{
			Identity:    row.identity(),
			DisplayName: row.DisplayName,
		})
	}
	return refs, nil
}

// Attributes fetches the directory attributes of one group.
func (d *Directory) Attributes(ctx context.Context, ref inactivity.GroupRef) (inactivity.GroupAttributes, error) {
	rows, err := d.client.InvokeCommand(ctx, "Get-DistributionGroup", map[string]any{
		"Identity": ref.Identity,
	})
	if err != nil {
		return inactivity.GroupAttributes{}, err
	}
	if len(rows) == 0 {
		return inactivity.GroupAttributes{}, fmt.Errorf("distribution group %q not found", ref.Identity)
	}

	var row distributionGroupRow
	if err := json.Unmarshal(rows[0], &row); err != nil {
		return inactivity.GroupAttributes{}, fmt.Errorf("parsing distribution group %q: %w", ref.Identity, err)
	}

	attrs := inactivity.GroupAttributes{
		DisplayName:       row.DisplayName,
		PrimaryAddress:    row.PrimarySMTPAddress,
		Hidden:            row.HiddenFromAddressListsEnabled,
		RequireSenderAuth: row.RequireSenderAuthenticationEnabled,
		AcceptOnlyFrom:    row.AcceptMessagesOnlyFrom,
		RejectFrom:        row.RejectMessagesFrom,
		ManagedBy:         row.ManagedBy,
		Notes:             row.Notes,
		CustomAttribute1:  row.CustomAttribute1,
		CustomAttribute2:  row.CustomAttribute2,
	}
	if created, err := parseCmdletTime(row.WhenCreatedUTC); err == nil && created != nil {
		attrs.Created = *created
	}
	return attrs, nil
}

type folderStatisticsRow struct {
	Name             string `json:"Name"`
	LastModifiedTime string `json:"LastModifiedTime"`
}

// LastFolderActivity returns the newest folder modification timestamp of
// the group's mailbox, or nil when no folder carries one.
func (d *Directory) LastFolderActivity(ctx context.Context, ref inactivity.GroupRef) (*time.Time, error) {
	rows, err := d.client.InvokeCommand(ctx, "Get-MailboxFolderStatistics", map[string]any{
		"Identity": ref.Identity,
	})
	if err != nil {
		return nil, err
	}

	var newest *time.Time
	for _, raw := range rows {
		var row folderStatisticsRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("parsing folder statistics for %q: %w", ref.Identity, err)
		}
		stamp, err := parseCmdletTime(row.LastModifiedTime)
		if err != nil {
			return nil, fmt.Errorf("parsing folder timestamp for %q: %w", ref.Identity, err)
		}
		if stamp == nil {
			continue
		}
		if newest == nil || stamp.After(*newest) {
			newest = stamp
		}
	}
	return newest, nil
}

type memberRow struct {
	DisplayName        string `json:"DisplayName"`
	Name               string `json:"Name"`
	PrimarySMTPAddress string `json:"PrimarySmtpAddress"`
}

// Members returns the resolved membership of one group.
func (d *Directory) Members(ctx context.Context, ref inactivity.GroupRef) ([]inactivity.Descriptor, error) {
	rows, err := d.client.InvokeCommand(ctx, "Get-DistributionGroupMember", map[string]any{
		"Identity":   ref.Identity,
		"ResultSize": "Unlimited",
	})
	if err != nil {
		return nil, err
	}

	members := make([]inactivity.Descriptor, 0, len(rows))
	for _, raw := range rows {
		var row memberRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("parsing member row for %q: %w", ref.Identity, err)
		}
		name := row.DisplayName
		if name == "" {
			name = row.Name
		}
		members = append(members, inactivity.Descriptor{
			DisplayName: name,
			Address:     row.PrimarySMTPAddress,
		})
	}
	return members, nil
}

// ResolveIdentifier resolves one raw owner identifier through Get-Recipient.
func (d *Directory) ResolveIdentifier(ctx context.Context, raw string) (inactivity.Descriptor, error) {
	rows, err := d.client.InvokeCommand(ctx, "Get-Recipient", map[string]any{
		"Identity": raw,
	})
	if err != nil {
		return inactivity.Descriptor{}, err
	}
	if len(rows) == 0 {
		return inactivity.Descriptor{}, fmt.Errorf("recipient %q not found", raw)
	}

	var row memberRow
	if err := json.Unmarshal(rows[0], &row); err != nil {
		return inactivity.Descriptor{}, fmt.Errorf("parsing recipient %q: %w", raw, err)
	}
	name := row.DisplayName
	if name == "" {
		name = row.Name
	}
	return inactivity.Descriptor{DisplayName: name, Address: row.PrimarySMTPAddress}, nil
}

type messageTraceRow struct {
	Received         string `json:"Received"`
	SenderAddress    string `json:"SenderAddress"`
	RecipientAddress string `json:"RecipientAddress"`
	Subject          string `json:"Subject"`
}

// Trace queries the message trace for one address and direction within the
// window. Inbound hits report the sender as counterpart, outbound hits the
// recipient.
func (d *Directory) Trace(ctx context.Context, address string, direction inactivity.TraceDirection, start, end time.Time) ([]inactivity.TraceEvent, error) {
	params := map[string]any{
		"StartDate": start.UTC().Format(time.RFC3339),
		"EndDate":   end.UTC().Format(time.RFC3339),
		"PageSize":  1000,
	}
	switch direction {
	case inactivity.DirectionInbound:
		params["RecipientAddress"] = address
	case inactivity.DirectionOutbound:
		params["SenderAddress"] = address
	default:
		return nil, fmt.Errorf("unknown trace direction %q", direction)
	}

	rows, err := d.client.InvokeCommand(ctx, "Get-MessageTrace", params)
	if err != nil {
		return nil, err
	}

	events := make([]inactivity.TraceEvent, 0, len(rows))
	for _, raw := range rows {
		var row messageTraceRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("parsing message trace row for %q: %w", address, err)
		}
		stamp, err := parseCmdletTime(row.Received)
		if err != nil {
			return nil, fmt.Errorf("parsing trace timestamp for %q: %w", address, err)
		}
		if stamp == nil {
			// Rows without a received timestamp carry no recency signal.
			continue
		}
		counterpart := row.SenderAddress
		if direction == inactivity.DirectionOutbound {
			counterpart = row.RecipientAddress
		}
		events = append(events, inactivity.TraceEvent{
			Timestamp:   *stamp,
			Counterpart: counterpart,
			Subject:     row.Subject,
		})
	}
	return events, nil
}

// cmdletTimeLayouts are the timestamp renderings observed across cmdlets.
var cmdletTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006 3:04:05 PM",
	"2006-01-02 15:04:05",
}

// parseCmdletTime parses a cmdlet timestamp string. Empty input yields a
// nil timestamp without error.
func parseCmdletTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range cmdletTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", s)
}
