// Package places wraps the Google Places API (New) text search endpoint.
// A Client performs exactly one outbound call per invocation and maps
// upstream failures onto the package's error taxonomy; retry policy, if
// any, belongs to the caller.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the production Places API (New) endpoint
const DefaultBaseURL = "https://places.googleapis.com/v1"

// DefaultTimeout bounds a single outbound search call
const DefaultTimeout = 30 * time.Second

// fieldMask limits the response to the fields flattened into Place plus the
// pagination token. The full wildcard mask bills at the highest SKU, so the
// mask stays scoped to what the service actually extracts.
const fieldMask = "places.id,places.displayName,places.formattedAddress," +
	"places.primaryType,places.rating,places.userRatingCount," +
	"places.businessStatus,nextPageToken"

var (
	// ErrInvalidRequest covers queries the upstream rejects: empty text,
	// malformed parameters, or a stale page token
	ErrInvalidRequest = errors.New("invalid search request")

	// ErrQuotaExceeded covers upstream rate and quota limits
	ErrQuotaExceeded = errors.New("search quota exceeded")

	// ErrUpstreamUnavailable covers transport failures, credential
	// problems, and upstream server errors
	ErrUpstreamUnavailable = errors.New("places api unavailable")
)

// Client wraps calls to the Places API text search
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Places API client. A non-positive timeout falls back
// to DefaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchText runs one text search page. A non-empty pageToken must be a
// token returned by a previous call for the same query. Zero results is a
// valid outcome: an empty slice and no token.
func (c *Client) SearchText(ctx context.Context, query, pageToken string) ([]Place, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", fmt.Errorf("%w: query must not be empty", ErrInvalidRequest)
	}

	body, err := json.Marshal(searchRequest{TextQuery: query, PageToken: pageToken})
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewBuffer(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", c.statusError(resp)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("%w: decoding response: %v", ErrUpstreamUnavailable, err)
	}

	records := make([]Place, 0, len(out.Places))
	for _, p := range out.Places {
		records = append(records, p.record())
	}

	return records, out.NextPageToken, nil
}

// statusError maps a non-2xx upstream response onto the error taxonomy,
// keeping the upstream status and message as context
func (c *Client) statusError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)

	detail := strings.TrimSpace(string(b))
	var apiErr apiError
	if err := json.Unmarshal(b, &apiErr); err == nil && apiErr.Error.Message != "" {
		detail = apiErr.Error.Message
		if apiErr.Error.Status != "" {
			detail = apiErr.Error.Status + ": " + detail
		}
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidRequest, detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, detail)
	}
}
