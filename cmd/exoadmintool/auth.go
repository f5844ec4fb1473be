package main

import (
	"context"
	"crypto"
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/golang-jwt/jwt/v5"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"software.sslmate.com/src/go-pkcs12"

	"exoadmintool/internal/common/ratelimit"
	"exoadmintool/internal/common/security"
	"exoadmintool/internal/exo"
)

// TokenClaims represents relevant claims from Microsoft Entra ID JWT tokens
type TokenClaims struct {
	AppDisplayName       string   `json:"app_displayname"` // Application display name from Entra ID
	Roles                []string `json:"roles"`           // Assigned application roles (e.g., Exchange.ManageAsApp)
	jwt.RegisteredClaims          // Standard JWT claims (exp, iss, etc.)
}

// setupCredential builds the application credential shared by the Graph
// client and the admin REST client, and prints token diagnostics in
// verbose mode.
func setupCredential(ctx context.Context, config *Config, logger *slog.Logger) (azcore.TokenCredential, error) {
	logger.Debug("Setting up application credential",
		"tenantID", security.MaskGUID(config.TenantID),
		"clientID", security.MaskGUID(config.ClientID))

	cred, err := getCredential(config, logger)
	if err != nil {
		return nil, fmt.Errorf("authentication setup failed: %w", err)
	}

	// Get and display token information if verbose
	if config.VerboseMode {
		token, err := cred.GetToken(ctx, policy.TokenRequestOptions{
			Scopes: []string{exo.AdminScope},
		})
		if err != nil {
			logVerbose(config.VerboseMode, "Warning: Could not retrieve token for verbose display: %v", err)
		} else {
			printTokenInfo(token)
		}
	}

	return cred, nil
}

// setupGraphClient initializes the Microsoft Graph SDK client used by the
// convert workflow's account mutations.
func setupGraphClient(cred azcore.TokenCredential, config *Config) (*msgraphsdk.GraphServiceClient, error) {
	// Scopes for Application Permissions usually are https://graph.microsoft.com/.default
	client, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, []string{"https://graph.microsoft.com/.default"})
	if err != nil {
		return nil, fmt.Errorf("graph client initialization failed: %w", err)
	}

	if config.VerboseMode {
		logVerbose(config.VerboseMode, "Graph SDK client initialized successfully")
		logVerbose(config.VerboseMode, "Target scope: https://graph.microsoft.com/.default")
	}

	return client, nil
}

// setupAdminClient initializes the Exchange admin REST client with request
// pacing from the -rps flag.
func setupAdminClient(cred azcore.TokenCredential, config *Config, logger *slog.Logger) *exo.Client {
	limiter := ratelimit.New(config.RPS)
	logger.Debug("Admin REST client configured",
		"organization", config.Organization,
		"pacing", limiter.String())

	return exo.NewClient(config.Organization, cred, &exo.ClientOptions{
		Limiter: limiter,
		Logger:  logger,
	})
}

func getCredential(config *Config, logger *slog.Logger) (azcore.TokenCredential, error) {
	// 1. Client Secret
	if config.Secret != "" {
		logger.Debug("Authentication method: Client Secret")
		return azidentity.NewClientSecretCredential(config.TenantID, config.ClientID, config.Secret, nil)
	}

	// 2. PFX File
	if config.PfxPath != "" {
		logger.Debug("Authentication method: PFX Certificate File", "path", config.PfxPath)
		pfxData, err := os.ReadFile(config.PfxPath)
		if err != nil {
			logger.Error("Failed to read PFX file", "path", config.PfxPath, "error", err)
			return nil, fmt.Errorf("failed to read PFX file: %w", err)
		}
		logger.Debug("PFX file read successfully", "bytes", len(pfxData))
		return createCertCredential(config.TenantID, config.ClientID, pfxData, config.PfxPass)
	}

	// 3. Windows Cert Store (Thumbprint)
	if config.Thumbprint != "" {
		logger.Debug("Authentication method: Windows Certificate Store", "thumbprint", config.Thumbprint)
		pfxData, tempPass, err := exportCertFromStore(config.Thumbprint)
		if err != nil {
			return nil, fmt.Errorf("failed to export cert from store: %w", err)
		}
		logger.Debug("Certificate exported successfully", "bytes", len(pfxData))
		return createCertCredential(config.TenantID, config.ClientID, pfxData, tempPass)
	}

	return nil, fmt.Errorf("no valid authentication method provided (use -secret, -pfx, or -thumbprint)")
}

func createCertCredential(tenantID, clientID string, pfxData []byte, password string) (*azidentity.ClientCertificateCredential, error) {
	// Decode PFX using go-pkcs12 library (supports SHA-256 and other modern algorithms)
	// pkcs12.DecodeChain returns private key and full certificate chain
	key, cert, caCerts, err := pkcs12.DecodeChain(pfxData, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PFX: %w", err)
	}

	privKey, ok := key.(crypto.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("decoded key is not a valid crypto.PrivateKey")
	}

	// azidentity expects a slice of certs with the leaf certificate first
	certs := []*x509.Certificate{cert}
	if len(caCerts) > 0 {
		certs = append(certs, caCerts...)
	}

	// Send full certificate chain for better compatibility
	opts := &azidentity.ClientCertificateCredentialOptions{
		SendCertificateChain: true,
	}

	return azidentity.NewClientCertificateCredential(tenantID, clientID, certs, privKey, opts)
}

// Print token information
func printTokenInfo(token azcore.AccessToken) {
	fmt.Println()
	fmt.Println("Token Information:")
	fmt.Println("------------------")
	fmt.Printf("Token acquired successfully\n")
	fmt.Printf("Expires at: %s\n", token.ExpiresOn.Format("2006-01-02 15:04:05 MST"))

	// Calculate time until expiration
	timeUntilExpiry := time.Until(token.ExpiresOn)
	fmt.Printf("Valid for: %s\n", timeUntilExpiry.Round(time.Second))

	// Show truncated token (always truncate for security, even short tokens)
	fmt.Printf("Token (truncated): %s\n", security.MaskAccessToken(token.Token))
	fmt.Printf("Token length: %d characters\n", len(token.Token))

	// Parse and display JWT claims (application name and roles)
	fmt.Println()
	fmt.Println("JWT Claims:")
	appName, roles, err := parseTokenClaims(token.Token)
	if err != nil {
		fmt.Printf("  (Could not parse JWT claims: %v)\n", err)
	} else {
		fmt.Printf("  Application Name: %s\n", appName)
		fmt.Printf("  Assigned Roles: %s\n", roles)
	}

	fmt.Println()
}

// parseTokenClaims extracts application name and assigned roles from a JWT access token.
func parseTokenClaims(tokenString string) (string, string, error) {
	// Parse without verification (token already validated by Azure SDK)
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, &TokenClaims{})
	if err != nil {
		return "", "", fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return "", "", fmt.Errorf("failed to extract claims from token")
	}

	// Extract app display name (may be empty)
	appName := claims.AppDisplayName
	if appName == "" {
		appName = "(not available)"
	}

	// Extract roles (may be empty array)
	rolesStr := "(none)"
	if len(claims.Roles) > 0 {
		rolesStr = strings.Join(claims.Roles, ", ")
	}

	return appName, rolesStr, nil
}
