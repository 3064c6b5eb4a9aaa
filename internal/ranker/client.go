// Package ranker is the HTTP client for the external candidate scoring
// collaborator. The scoring algorithm itself lives behind this contract.
package ranker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/campusware/peerlink/internal/domain/candidate"
	"github.com/campusware/peerlink/internal/domain/request"
)

// Client calls the recommendation service. Timeout and retry policy belong to
// the injected http.Client, not to the engagement core.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a ranker client. A nil httpClient falls back to
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// Rank fetches the ordered candidate list for the actor. Any transport error
// or non-2xx answer maps to candidate.ErrRankerUnavailable; the caller's
// cached state is left untouched.
func (c *Client) Rank(ctx context.Context, actorID int64, kind request.Kind, limit int) ([]candidate.Score, error) {
	url := fmt.Sprintf("%s/recommendations/%s?limit=%d", c.baseURL, kind, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building ranker request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Actor-ID", strconv.FormatInt(actorID, 10))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", candidate.ErrRankerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", candidate.ErrRankerUnavailable, resp.StatusCode)
	}

	var scores []candidate.Score
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", candidate.ErrRankerUnavailable, err)
	}
	return scores, nil
}
