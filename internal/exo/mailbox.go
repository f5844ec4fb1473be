package exo

import (
	"context"
	"encoding/json"
	"fmt"

	"exoadmintool/internal/convert"
)

type mailboxRow struct {
	Identity                  string `json:"Identity"`
	ExternalDirectoryObjectID string `json:"ExternalDirectoryObjectId"`
	DisplayName               string `json:"DisplayName"`
	UserPrincipalName         string `json:"UserPrincipalName"`
	PrimarySMTPAddress        string `json:"PrimarySmtpAddress"`
	RecipientTypeDetails      string `json:"RecipientTypeDetails"`
}

// GetMailbox fetches the current state of one mailbox.
func (d *Directory) GetMailbox(ctx context.Context, identity string) (convert.Mailbox, error) {
	rows, err := d.client.InvokeCommand(ctx, "Get-Mailbox", map[string]any{
		"Identity": identity,
	})
	if err != nil {
		return convert.Mailbox{}, err
	}
	if len(rows) == 0 {
		return convert.Mailbox{}, fmt.Errorf("mailbox %q not found", identity)
	}

	var row mailboxRow
	if err := json.Unmarshal(rows[0], &row); err != nil {
		return convert.Mailbox{}, fmt.Errorf("parsing mailbox %q: %w", identity, err)
	}
	return convert.Mailbox{
		Identity:          row.Identity,
		DisplayName:       row.DisplayName,
		UserPrincipalName: row.UserPrincipalName,
		PrimaryAddress:    row.PrimarySMTPAddress,
		ExternalObjectID:  row.ExternalDirectoryObjectID,
		Type:              row.RecipientTypeDetails,
	}, nil
}

// SetMailboxType changes the mailbox type, e.g. to "Shared".
func (d *Directory) SetMailboxType(ctx context.Context, identity, mailboxType string) error {
	_, err := d.client.InvokeCommand(ctx, "Set-Mailbox", map[string]any{
		"Identity": identity,
		"Type":     mailboxType,
	})
	return err
}
