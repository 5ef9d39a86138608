// Package sdk defines the wire types of the HTTP API and a typed client
// for consuming it from Go.
package sdk

import (
	"github.com/placescout/placescout/pkg/places"
)

/** Requests */

// SearchRequest represents the request body for starting a new search
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchMoreRequest represents the request body for fetching the next page
// of an existing search
type SearchMoreRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

/** Responses */

// SearchResponse represents the response body for a new search
type SearchResponse struct {
	SessionID  string         `json:"session_id"`
	Places     []places.Place `json:"places"`
	HasMore    bool           `json:"has_more"`
	TotalCount int            `json:"total_count"`
	Filename   string         `json:"filename"`
}

// SearchMoreResponse represents the response body for a load-more request.
// Places holds only the increment; TotalCount the accumulated size.
type SearchMoreResponse struct {
	Places     []places.Place `json:"places"`
	HasMore    bool           `json:"has_more"`
	TotalCount int            `json:"total_count"`
	PageCount  int            `json:"page_count"`
}

// HealthResponse represents the health check response body
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the uniform error body: every handler failure surfaces
// as {"error": "<message>"} with a matching HTTP status
type ErrorResponse struct {
	Error string `json:"error"`
}
