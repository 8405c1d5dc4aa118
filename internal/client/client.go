// Package client is the HTTP consumer side of the Study Buddy API:
// a stateless pair of calls with no retries. A request either
// resolves or fails once; the caller decides what to show.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/studybuddy-ai/studybuddy/internal/domain"
)

// Client talks to one Study Buddy server
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Chat sends one message and returns the tutor's reply. Errors are
// returned to the caller for display; nothing is retried.
func (c *Client) Chat(ctx context.Context, message, sessionID string) (*domain.ChatResponse, error) {
	body, err := json.Marshal(domain.ChatRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat request failed: %s", errorMessage(res))
	}

	var resp domain.ChatResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding chat response: %w", err)
	}
	return &resp, nil
}

// Materials fetches the study materials set. Any failure degrades to
// an empty set with zeroed metadata; the materials pane simply shows
// nothing rather than an error.
func (c *Client) Materials(ctx context.Context) *domain.MaterialSet {
	empty := &domain.MaterialSet{Topics: []domain.StudyTopic{}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/materials", nil)
	if err != nil {
		return empty
	}

	res, err := c.http.Do(req)
	if err != nil {
		return empty
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return empty
	}

	var set domain.MaterialSet
	if err := json.NewDecoder(res.Body).Decode(&set); err != nil {
		return empty
	}
	if set.Topics == nil {
		set.Topics = []domain.StudyTopic{}
	}
	return &set
}

// errorMessage reads an optional {"error": ...} body, falling back to
// the HTTP status line
func errorMessage(res *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err == nil {
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			return body.Error
		}
	}
	return res.Status
}
