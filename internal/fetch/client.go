// Package fetch retrieves raw scan payloads from the upstream scan API
// and assembles them into a bundle under partial-failure tolerance.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/netwatch/posture/internal/bundle"
)

// DefaultTimeout bounds each individual endpoint fetch.
const DefaultTimeout = 15 * time.Second

// dnsRecordQuery asks the dns endpoint for the full record-type set.
const dnsRecordQuery = "A&AAAA&CNAME&DNS&MX&TXT"

// Client issues one request per endpoint against the upstream API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given API base URL. A nil
// httpClient uses a default client; per-request deadlines come from
// the caller's context.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Fetch retrieves one endpoint's payload for a host. The request shape
// is a per-endpoint policy: dns carries the record-type query and rdap
// is a body-carrying POST; everything else is a plain GET lookup.
func (c *Client) Fetch(ctx context.Context, endpoint, host string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, endpoint, host)

	var req *http.Request
	var err error
	switch endpoint {
	case bundle.EndpointDNS:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, url+"?"+dnsRecordQuery, nil)
	case bundle.EndpointRDAP:
		body, merr := json.Marshal(map[string]string{"host": host})
		if merr != nil {
			return nil, merr
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost,
			fmt.Sprintf("%s/%s", c.baseURL, endpoint), bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	default:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}
	return payload, nil
}
