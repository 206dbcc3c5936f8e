// Package gemini wraps the Gemini text-completion API behind a single
// synchronous call. A sentinel credential switches the client into
// deterministic mock mode so the rest of the system stays testable
// without network access.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// MockKey switches the client into deterministic mock mode.
	MockKey = "DUMMY_KEY_FOR_TESTING"

	// EnvKey is the environment variable consulted when no key is
	// configured explicitly.
	EnvKey = "GEMINI_API_KEY"

	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-pro"
)

// ErrMissingKey is returned by New when no usable credential is
// available from explicit input or the environment.
var ErrMissingKey = errors.New("gemini API key not found or provided")

// Client is a synchronous completion client.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// Option adjusts client construction.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout sets the HTTP client timeout. A hung backend call is
// converted into the error-text contract instead of hanging the caller
// forever.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// New builds a client from the explicit key, falling back to the
// GEMINI_API_KEY environment variable. It returns ErrMissingKey when
// neither is set.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvKey)
	}
	if apiKey == "" {
		return nil, ErrMissingKey
	}
	c := &Client{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Mock reports whether the client is in deterministic mock mode.
func (c *Client) Mock() bool {
	return c.apiKey == MockKey
}

// Complete sends prompt to the backend and returns the response text.
// Transport and backend failures are converted into descriptive text so
// the caller always receives a string, never an error.
func (c *Client) Complete(ctx context.Context, prompt string) string {
	if c.Mock() {
		return mockResponse(prompt)
	}
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("An error occurred while communicating with the Gemini API: %v", err)
	}
	return text
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("status %d: %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func mockResponse(prompt string) string {
	switch {
	case strings.Contains(prompt, "generate the next logical task"):
		return `{"task_description": "Mock task: Implement the user login page.", "coding_prompt": "Create a new page for user login with username and password fields."}`
	case strings.Contains(prompt, "A task was marked as completed"):
		return `{"verified": true, "feedback": "This looks great. Well done."}`
	default:
		return "This is a generic mock response for other queries."
	}
}
