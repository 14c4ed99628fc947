// Package marketplaceapi is the HTTP client for the remote marketplace
// service. It implements the order, rating and finance gateway ports and
// translates transport and HTTP-level failures into the remote error
// sentinels the workflow layer classifies on.
package marketplaceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// Client talks to the marketplace API over HTTP. A single client serves all
// three gateway ports.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewClient creates a client for the marketplace API at baseURL. The token
// is sent as a bearer credential with every request.
func NewClient(baseURL string, authToken string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if authToken == "" {
		return nil, errs.NewValueIsRequiredError("authToken")
	}

	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		authToken:  authToken,
	}, nil
}

// do performs one request against the marketplace API. A non-nil in is sent
// as a JSON body, a non-nil out receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method string, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ports.ErrRemoteUnavailable, err)
		}
	}
	return nil
}

// mapStatus converts non-2xx responses into remote error sentinels.
func mapStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	message := remoteMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ports.ErrRemoteUnauthenticated, message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ports.ErrRemoteForbidden, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ports.ErrRemoteNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ports.ErrRemoteConflict, message)
	default:
		return fmt.Errorf("%w: status %d: %s", ports.ErrRemoteUnavailable, resp.StatusCode, message)
	}
}

// remoteMessage extracts the error message the marketplace API puts in its
// problem body, falling back to the raw body when it is not JSON.
func remoteMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no details"
	}

	var problem struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &problem); err == nil && problem.Message != "" {
		return problem.Message
	}
	return strings.TrimSpace(string(raw))
}
