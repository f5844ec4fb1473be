package convert

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

type fakeMailboxes struct {
	mailboxes map[string]Mailbox
	setErr    map[string]error
	setCalls  []string
}

func (f *fakeMailboxes) GetMailbox(ctx context.Context, identity string) (Mailbox, error) {
	mb, ok := f.mailboxes[identity]
	if !ok {
		return Mailbox{}, errors.New("mailbox not found")
	}
	return mb, nil
}

func (f *fakeMailboxes) SetMailboxType(ctx context.Context, identity, mailboxType string) error {
	f.setCalls = append(f.setCalls, identity+":"+mailboxType)
	return f.setErr[identity]
}

type fakeAccounts struct {
	disableErr map[string]error
	rotateErr  map[string]error
	disabled   []string
	passwords  map[string]string
}

func (f *fakeAccounts) DisableSignIn(ctx context.Context, objectID string) error {
	if err := f.disableErr[objectID]; err != nil {
		return err
	}
	f.disabled = append(f.disabled, objectID)
	return nil
}

func (f *fakeAccounts) RotatePassword(ctx context.Context, objectID, password string) error {
	if err := f.rotateErr[objectID]; err != nil {
		return err
	}
	if f.passwords == nil {
		f.passwords = map[string]string{}
	}
	f.passwords[objectID] = password
	return nil
}

func newConverter(mb *fakeMailboxes, acc *fakeAccounts, rotate bool) *Converter {
	return &Converter{
		Mailboxes:       mb,
		Accounts:        acc,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		RotatePasswords: rotate,
	}
}

func TestConverterRun(t *testing.T) {
	mb := &fakeMailboxes{
		mailboxes: map[string]Mailbox{
			"user@contoso.com": {
				Identity:         "user@contoso.com",
				DisplayName:      "Regular User",
				ExternalObjectID: "obj-user",
				Type:             TypeUserMailbox,
			},
			"shared@contoso.com": {
				Identity:    "shared@contoso.com",
				DisplayName: "Already Shared",
				Type:        TypeSharedMailbox,
			},
			"room@contoso.com": {
				Identity:    "room@contoso.com",
				DisplayName: "Meeting Room",
				Type:        "RoomMailbox",
			},
		},
	}
	acc := &fakeAccounts{}

	c := newConverter(mb, acc, false)
	outcomes, err := c.Run(context.Background(), []string{
		"user@contoso.com",
		"shared@contoso.com",
		"room@contoso.com",
		"missing@contoso.com",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 4 {
		t.Fatalf("outcome count = %d, want 4", len(outcomes))
	}

	wantStatus := []Status{StatusConverted, StatusSkipped, StatusFailed, StatusFailed}
	for i, want := range wantStatus {
		if outcomes[i].Status != want {
			t.Errorf("outcomes[%d] = %s (%s), want %s",
				i, outcomes[i].Status, outcomes[i].Detail, want)
		}
	}

	if len(mb.setCalls) != 1 || mb.setCalls[0] != "user@contoso.com:Shared" {
		t.Errorf("SetMailboxType calls = %v, want the user mailbox only", mb.setCalls)
	}
	if len(acc.disabled) != 1 || acc.disabled[0] != "obj-user" {
		t.Errorf("disabled accounts = %v, want [obj-user]", acc.disabled)
	}
	if len(acc.passwords) != 0 {
		t.Errorf("passwords rotated = %v, want none without rotation enabled", acc.passwords)
	}
}

func TestConverterRun_PartialOutcomes(t *testing.T) {
	base := Mailbox{
		Identity:         "user@contoso.com",
		DisplayName:      "User",
		ExternalObjectID: "obj-user",
		Type:             TypeUserMailbox,
	}

	tests := []struct {
		name       string
		mailbox    Mailbox
		setErr     error
		disableErr error
		rotateErr  error
		rotate     bool
		wantStatus Status
		wantDetail string
	}{
		{
			name:       "type change failure",
			mailbox:    base,
			setErr:     errors.New("throttled"),
			wantStatus: StatusFailed,
			wantDetail: "type change failed",
		},
		{
			name: "no linked account",
			mailbox: Mailbox{
				Identity: "user@contoso.com", DisplayName: "User", Type: TypeUserMailbox,
			},
			wantStatus: StatusPartial,
			wantDetail: "no directory account",
		},
		{
			name:       "sign-in disable failure",
			mailbox:    base,
			disableErr: errors.New("forbidden"),
			wantStatus: StatusPartial,
			wantDetail: "disabling sign-in failed",
		},
		{
			name:       "password rotation failure",
			mailbox:    base,
			rotateErr:  errors.New("policy violation"),
			rotate:     true,
			wantStatus: StatusPartial,
			wantDetail: "password rotation failed",
		},
		{
			name:       "full success with rotation",
			mailbox:    base,
			rotate:     true,
			wantStatus: StatusConverted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mb := &fakeMailboxes{
				mailboxes: map[string]Mailbox{"user@contoso.com": tt.mailbox},
				setErr:    map[string]error{"user@contoso.com": tt.setErr},
			}
			acc := &fakeAccounts{
				disableErr: map[string]error{"obj-user": tt.disableErr},
				rotateErr:  map[string]error{"obj-user": tt.rotateErr},
			}

			c := newConverter(mb, acc, tt.rotate)
			outcomes, err := c.Run(context.Background(), []string{"user@contoso.com"})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			got := outcomes[0]
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s (%s), want %s", got.Status, got.Detail, tt.wantStatus)
			}
			if tt.wantDetail != "" && !strings.Contains(got.Detail, tt.wantDetail) {
				t.Errorf("Detail = %q, want substring %q", got.Detail, tt.wantDetail)
			}
			if tt.wantStatus == StatusConverted && tt.rotate && !got.PasswordRotated {
				t.Error("PasswordRotated = false, want true")
			}
		})
	}
}

func TestConverterRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newConverter(&fakeMailboxes{}, &fakeAccounts{}, false)
	if _, err := c.Run(ctx, []string{"user@contoso.com"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestGeneratePassword(t *testing.T) {
	t.Run("length and charset", func(t *testing.T) {
		pw, err := GeneratePassword(24)
		if err != nil {
			t.Fatalf("GeneratePassword() error = %v", err)
		}
		if len(pw) != 24 {
			t.Errorf("length = %d, want 24", len(pw))
		}
		for _, r := range pw {
			if !strings.ContainsRune(passwordCharset, r) {
				t.Errorf("character %q outside charset", r)
			}
		}
	})

	t.Run("invalid length", func(t *testing.T) {
		if _, err := GeneratePassword(0); err == nil {
			t.Error("GeneratePassword(0) error = nil, want rejection")
		}
	})

	t.Run("successive values differ", func(t *testing.T) {
		a, err := GeneratePassword(24)
		if err != nil {
			t.Fatalf("GeneratePassword() error = %v", err)
		}
		b, err := GeneratePassword(24)
		if err != nil {
			t.Fatalf("GeneratePassword() error = %v", err)
		}
		if a == b {
			t.Error("two generated passwords are identical")
		}
	})
}
