// Package exo binds Exchange Online admin cmdlets over the admin REST
// endpoint. Each exported operation maps to one cmdlet invocation; results
// come back as JSON objects decoded into the package's row types.
package exo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"exoadmintool/internal/common/ratelimit"
)

const (
	defaultBaseURL = "https://outlook.office365.com"

	// AdminScope is the token scope for the Exchange admin endpoint.
	AdminScope = "https://outlook.office365.com/.default"

	invokePathFormat = "/adminapi/beta/%s/InvokeCommand"

	// tokenRefreshMargin renews the cached token this long before expiry.
	tokenRefreshMargin = 2 * time.Minute
)

// ClientOptions customizes a Client. The zero value selects the production
// endpoint, a 60 second HTTP timeout and no pacing.
type ClientOptions struct {
	// BaseURL overrides the service endpoint, used by tests.
	BaseURL string

	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client

	// Limiter paces cmdlet invocations when set.
	Limiter *ratelimit.Limiter

	// Logger receives per-invocation debug records.
	Logger *slog.Logger
}

// Client invokes Exchange Online cmdlets for one tenant.
type Client struct {
	baseURL    string
	tenant     string
	credential azcore.TokenCredential
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	logger     *slog.Logger

	mu    sync.Mutex
	token azcore.AccessToken
}

// NewClient creates a cmdlet client for the tenant. The credential is used
// lazily; no token is acquired until the first invocation.
func NewClient(tenant string, credential azcore.TokenCredential, opts *ClientOptions) *Client {
	if opts == nil {
		opts = &ClientOptions{}
	}
	c := &Client{
		baseURL:    opts.BaseURL,
		tenant:     tenant,
		credential: credential,
		httpClient: opts.HTTPClient,
		limiter:    opts.Limiter,
		logger:     opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

type cmdletInput struct {
	CmdletName string         `json:"CmdletName"`
	Parameters map[string]any `json:"Parameters"`
}

type invokeRequest struct {
	CmdletInput cmdletInput `json:"CmdletInput"`
}

type invokeResponse struct {
	Value    []json.RawMessage `json:"value"`
	NextLink string            `json:"@odata.nextLink"`
}

// apiError is the error envelope returned by the admin endpoint.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// InvokeCommand runs one cmdlet and returns all result rows, following
// pagination links until the result set is complete.
func (c *Client) InvokeCommand(ctx context.Context, cmdlet string, params map[string]any) ([]json.RawMessage, error) {
	if params == nil {
		params = map[string]any{}
	}
	body, err := json.Marshal(invokeRequest{CmdletInput: cmdletInput{
		CmdletName: cmdlet,
		Parameters: params,
	}})
	if err != nil {
		return nil, fmt.Errorf("marshaling %s input: %w", cmdlet, err)
	}

	url := c.baseURL + fmt.Sprintf(invokePathFormat, c.tenant)
	var rows []json.RawMessage
	for url != "" {
		page, err := c.postPage(ctx, cmdlet, url, body)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Value...)
		url = page.NextLink
		// Pagination links carry the full continuation state; the cmdlet
		// body is only sent on the first request.
		body = nil
	}

	c.logger.Debug("Cmdlet completed", "cmdlet", cmdlet, "rows", len(rows))
	return rows, nil
}

func (c *Client) postPage(ctx context.Context, cmdlet, url string, body []byte) (*invokeResponse, error) {
	if c.limiter != nil && c.limiter.Enabled() {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring admin token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", cmdlet, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoking %s: %w", cmdlet, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", cmdlet, err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope apiError
		if json.Unmarshal(respBody, &envelope) == nil && envelope.Error.Message != "" {
			return nil, fmt.Errorf("%s failed with status %d: %s (%s)",
				cmdlet, resp.StatusCode, envelope.Error.Message, envelope.Error.Code)
		}
		return nil, fmt.Errorf("%s failed with status %d: %s", cmdlet, resp.StatusCode, string(respBody))
	}

	var page invokeResponse
	if err := json.Unmarshal(respBody, &page); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", cmdlet, err)
	}
	return &page, nil
}

// accessToken returns a cached token, renewing it near expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.Token != "" && time.Until(c.token.ExpiresOn) > tokenRefreshMargin {
		return c.token.Token, nil
	}

	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{AdminScope},
	})
	if err != nil {
		return "", err
	}
	c.token = token
	c.logger.Debug("Admin token acquired", "expiresOn", token.ExpiresOn.Format(time.RFC3339))
	return token.Token, nil
}
