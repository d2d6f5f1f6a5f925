// Package client provides an HTTP client for the portfolio collaborator API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/marsadembi/portfolio/internal/comment"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: %s", http.StatusText(e.Status))
}

// Client is an HTTP client for the portfolio API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListComments returns every comment and the server-computed average rating.
func (c *Client) ListComments(ctx context.Context) (*comment.Listing, error) {
	var l comment.Listing
	if err := c.get(ctx, "/api/comments", &l); err != nil {
		return nil, err
	}
	if l.Comments == nil {
		l.Comments = make([]*comment.Comment, 0)
	}
	return &l, nil
}

// AddComment stores a comment. The response body is not needed.
func (c *Client) AddComment(ctx context.Context, in comment.Input) error {
	return c.post(ctx, "/api/comments", in, nil)
}

// Chat sends a message to the chat endpoint and returns the reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	body := map[string]string{"message": message}
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.post(ctx, "/api/chat", body, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
