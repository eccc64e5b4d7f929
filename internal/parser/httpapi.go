package parser

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medclaim/internal/domain"
)

const (
	defaultProviderTimeout = 120 * time.Second
	maxErrorBody           = 1000
)

// APIClient posts JSON requests to a single LLM provider endpoint.
type APIClient struct {
	provider string
	endpoint string
	headers  map[string]string
	http     *http.Client
}

// NewAPIClient creates an APIClient. A timeoutSecs of zero uses the provider default.
// headers are set on every request next to the JSON content type.
func NewAPIClient(provider, endpoint string, timeoutSecs int, headers map[string]string) *APIClient {
	timeout := time.Duration(timeoutSecs) * time.Second
	if timeout == 0 {
		timeout = defaultProviderTimeout
	}
	return &APIClient{
		provider: provider,
		endpoint: endpoint,
		headers:  headers,
		http:     &http.Client{Timeout: timeout},
	}
}

// Provider returns the provider name used in errors.
func (c *APIClient) Provider() string { return c.provider }

// PostJSON sends reqBody and decodes a 200 answer into respBody. A 429 becomes a
// RateLimitError and any other non-200 answer a StatusError.
func (c *APIClient) PostJSON(ctx context.Context, reqBody, respBody interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s API: %w", c.provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", c.provider, err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{Provider: c.provider, StatusCode: resp.StatusCode, Body: Truncate(string(raw), maxErrorBody)}
		if resp.StatusCode == http.StatusTooManyRequests {
			return NewRateLimitError(c.provider, statusErr, ParseRetryAfterHeader(resp.Header.Get("Retry-After")))
		}
		return statusErr
	}

	if err := json.Unmarshal(raw, respBody); err != nil {
		return fmt.Errorf("unmarshaling %s response: %w", c.provider, err)
	}
	return nil
}

// CheckContentType rejects MIME types no provider accepts.
func CheckContentType(contentType string) error {
	if !domain.SupportedContentTypes[contentType] {
		return fmt.Errorf("unsupported content type for parsing: %s", contentType)
	}
	return nil
}

// EncodeFile returns the base64 form of a document body.
func EncodeFile(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
