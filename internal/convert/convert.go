// Package convert implements the shared-mailbox conversion workflow:
// validate the current mailbox state, switch the mailbox type, disable
// interactive sign-in and optionally rotate the account password.
package convert

import (
	"context"
	"fmt"
	"log/slog"
)

// RecipientTypeDetails values relevant to the workflow.
const (
	TypeUserMailbox   = "UserMailbox"
	TypeSharedMailbox = "SharedMailbox"
)

// Mailbox is the mailbox state the workflow validates against.
type Mailbox struct {
	Identity          string
	DisplayName       string
	UserPrincipalName string
	PrimaryAddress    string

	// ExternalObjectID links the mailbox to its directory account.
	ExternalObjectID string

	// Type is the RecipientTypeDetails value.
	Type string
}

// MailboxDirectory is the mailbox side of the workflow.
type MailboxDirectory interface {
	GetMailbox(ctx context.Context, identity string) (Mailbox, error)
	SetMailboxType(ctx context.Context, identity, mailboxType string) error
}

// AccountDirectory is the account side of the workflow: sign-in control
// and credential rotation for the directory account behind a mailbox.
type AccountDirectory interface {
	DisableSignIn(ctx context.Context, objectID string) error
	RotatePassword(ctx context.Context, objectID, password string) error
}

// Status classifies one per-mailbox outcome.
type Status string

const (
	// StatusConverted means the full workflow succeeded.
	StatusConverted Status = "Converted"

	// StatusSkipped means the mailbox needed no change.
	StatusSkipped Status = "Skipped"

	// StatusPartial means the type changed but a follow-up step failed.
	StatusPartial Status = "Partial"

	// StatusFailed means the mailbox was not converted.
	StatusFailed Status = "Failed"
)

// Outcome records the result for one requested mailbox.
type Outcome struct {
	Identity        string
	DisplayName     string
	Status          Status
	Detail          string
	PasswordRotated bool
}

// Converter runs the workflow over a list of mailbox identities. Mailboxes
// are processed sequentially; one failure never stops the batch.
type Converter struct {
	Mailboxes MailboxDirectory
	Accounts  AccountDirectory
	Logger    *slog.Logger

	// RotatePasswords enables credential rotation after sign-in disable.
	RotatePasswords bool
}

// Run converts each identity in order and returns one outcome per input.
// Only context cancellation aborts the batch.
func (c *Converter) Run(ctx context.Context, identities []string) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(identities))
	for _, identity := range identities {
		if err := ctx.Err(); err != nil {
			return outcomes, fmt.Errorf("conversion interrupted: %w", err)
		}
		outcome := c.convertOne(ctx, identity)
		c.Logger.Info("Mailbox processed",
			"mailbox", identity,
			"status", string(outcome.Status),
			"detail", outcome.Detail)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (c *Converter) convertOne(ctx context.Context, identity string) Outcome {
	outcome := Outcome{Identity: identity}

	mb, err := c.Mailboxes.GetMailbox(ctx, identity)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Detail = fmt.Sprintf("mailbox lookup failed: %v", err)
		return outcome
	}
	outcome.DisplayName = mb.DisplayName

	switch mb.Type {
	case TypeSharedMailbox:
		outcome.Status = StatusSkipped
		outcome.Detail = "already a shared mailbox"
		return outcome
	case TypeUserMailbox:
		// Convertible.
	default:
		outcome.Status = StatusFailed
		outcome.Detail = fmt.Sprintf("unsupported mailbox type %q", mb.Type)
		return outcome
	}

	if err := c.Mailboxes.SetMailboxType(ctx, identity, "Shared"); err != nil {
		outcome.Status = StatusFailed
		outcome.Detail = fmt.Sprintf("type change failed: %v", err)
		return outcome
	}

	if mb.ExternalObjectID == "" {
		outcome.Status = StatusPartial
		outcome.Detail = "converted, but no directory account linked; sign-in left enabled"
		return outcome
	}

	if err := c.Accounts.DisableSignIn(ctx, mb.ExternalObjectID); err != nil {
		outcome.Status = StatusPartial
		outcome.Detail = fmt.Sprintf("converted, but disabling sign-in failed: %v", err)
		return outcome
	}

	if c.RotatePasswords {
		password, err := GeneratePassword(passwordLength)
		if err != nil {
			outcome.Status = StatusPartial
			outcome.Detail = fmt.Sprintf("converted and sign-in disabled, but password generation failed: %v", err)
			return outcome
		}
		if err := c.Accounts.RotatePassword(ctx, mb.ExternalObjectID, password); err != nil {
			outcome.Status = StatusPartial
			outcome.Detail = fmt.Sprintf("converted and sign-in disabled, but password rotation failed: %v", err)
			return outcome
		}
		outcome.PasswordRotated = true
	}

	outcome.Status = StatusConverted
	outcome.Detail = "converted to shared mailbox, sign-in disabled"
	return outcome
}
