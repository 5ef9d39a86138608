package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// Client wraps calls to a running placescout API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Search starts a new search session
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/search", &SearchRequest{Query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchMore fetches the next page for an existing session
func (c *Client) SearchMore(ctx context.Context, sessionID string) (*SearchMoreResponse, error) {
	var out SearchMoreResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/search/more", &SearchMoreRequest{SessionID: sessionID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download fetches the accumulated results of a session as CSV, returning
// the file body and the server-chosen filename
func (c *Client) Download(ctx context.Context, sessionID string) ([]byte, string, error) {
	path := fmt.Sprintf("/api/download/%s", sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", apiError(http.MethodGet, path, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}

	return body, filename, nil
}

// Health checks service liveness
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON is a helper to perform JSON requests against the API
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(method, path, resp)
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

// apiError turns a non-2xx response into an error carrying the server's
// {"error"} message when one is present
func apiError(method, path string, resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)

	var errBody ErrorResponse
	if err := json.Unmarshal(b, &errBody); err == nil && errBody.Error != "" {
		return fmt.Errorf("api '%s %s' failed: %d: %s", method, path, resp.StatusCode, errBody.Error)
	}

	return fmt.Errorf("api '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
}
