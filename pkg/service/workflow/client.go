package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
	"github.com/mrm-lab/modelrisk/pkg/utils/safe"
)

// DefaultTimeout bounds a single check call against the workflow system
const DefaultTimeout = 10 * time.Second

type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a workflow Service backed by the validation workflow API.
// token is optional; when set it is sent as a bearer token.
func New(baseURL, token string, opts ...Option) (Service, error) {
	if baseURL == "" {
		return nil, goerr.New("workflow base URL is required")
	}

	c := &client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) CheckOpenValidations(ctx context.Context, modelID types.ModelID, proposed types.Tier) (*CheckResult, error) {
	endpoint := fmt.Sprintf("%s/api/models/%s/open-validations", c.baseURL, url.PathEscape(modelID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build workflow request", goerr.V("endpoint", endpoint))
	}

	q := req.URL.Query()
	q.Set("proposed_tier", proposed.String())
	req.URL.RawQuery = q.Encode()

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call workflow system",
			goerr.V("model_id", modelID),
			goerr.V("proposed_tier", proposed))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("workflow system returned unexpected status",
			goerr.V("status", resp.StatusCode),
			goerr.V("model_id", modelID))
	}

	var result CheckResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode workflow response", goerr.V("model_id", modelID))
	}

	return &result, nil
}
