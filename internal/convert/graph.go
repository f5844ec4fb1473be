package convert

import (
	"context"
	"fmt"

	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
)

// GraphAccountDirectory performs the account-side mutations through the
// Microsoft Graph users API.
type GraphAccountDirectory struct {
	client *msgraphsdk.GraphServiceClient
}

// NewGraphAccountDirectory wraps a Graph service client.
func NewGraphAccountDirectory(client *msgraphsdk.GraphServiceClient) *GraphAccountDirectory {
	return &GraphAccountDirectory{client: client}
}

// DisableSignIn blocks interactive sign-in for the account.
func (g *GraphAccountDirectory) DisableSignIn(ctx context.Context, objectID string) error {
	enabled := false
	user := models.NewUser()
	user.SetAccountEnabled(&enabled)

	if _, err := g.client.Users().ByUserId(objectID).Patch(ctx, user, nil); err != nil {
		return fmt.Errorf("disabling sign-in for %s: %w", objectID, err)
	}
	return nil
}

// RotatePassword replaces the account password. The new password is not
// flagged for change at next sign-in; the account is already blocked.
func (g *GraphAccountDirectory) RotatePassword(ctx context.Context, objectID, password string) error {
	force := false
	profile := models.NewPasswordProfile()
	profile.SetPassword(&password)
	profile.SetForceChangePasswordNextSignIn(&force)

	user := models.NewUser()
	user.SetPasswordProfile(profile)

	if _, err := g.client.Users().ByUserId(objectID).Patch(ctx, user, nil); err != nil {
		return fmt.Errorf("rotating password for %s: %w", objectID, err)
	}
	return nil
}
