// Package remote turns catalog references into directly playable links
// through the external content host.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrBadReference is returned when no identifier can be extracted
	ErrBadReference = errors.New("reference has no content identifier")
	// ErrBadStatus is returned for non-200 responses or a non-ok status field
	ErrBadStatus = errors.New("content host returned bad status")
	// ErrNoContent is returned when the response carries no usable entry
	ErrNoContent = errors.New("content host returned no content")
)

// maxBody bounds the decoded response size
const maxBody = 1 << 20

// response is the content host's JSON structure
type response struct {
	Status   string `json:"status"`
	Response struct {
		Items []struct {
			DirectLink string `json:"direct_link"`
		} `json:"items"`
	} `json:"response"`
}

// Client resolves remote references with a single bounded request
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for endpoint. timeout bounds one request.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Resolve returns the direct link of the first content entry for ref
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	id, err := ContentID(ref)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("id", id)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("content host request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: http %d", ErrBadStatus, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !strings.EqualFold(body.Status, "ok") {
		return "", fmt.Errorf("%w: %q", ErrBadStatus, body.Status)
	}
	if len(body.Response.Items) == 0 {
		return "", ErrNoContent
	}

	link := strings.TrimSpace(body.Response.Items[0].DirectLink)
	if link == "" {
		return "", ErrNoContent
	}
	return link, nil
}

// ContentID extracts the trailing non-empty path segment of ref.
// A bare token without a path is its own identifier.
func ContentID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrBadReference
	}

	p := ref
	if u, err := url.Parse(ref); err == nil && u.Host != "" {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	segments := strings.Split(strings.Trim(p, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" {
		return "", ErrBadReference
	}
	return id, nil
}
