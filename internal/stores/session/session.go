package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/placescout/placescout/pkg/places"
)

// Session is the accumulated state of one search: every record fetched so
// far in page order, plus the bookkeeping needed to fetch the next page.
// Values handed out by the store are snapshots; mutating one never affects
// the stored state.
type Session struct {
	ID       uuid.UUID `json:"id"`
	Query    string    `json:"query"`
	Filename string    `json:"filename"`

	// Places holds records in page-fetch order. Upstream pages can
	// overlap; duplicates are kept as delivered.
	Places []places.Place `json:"places"`

	// NextPageToken is empty once the upstream stops returning more
	// pages. TokenIssuedAt records when the current token arrived, since
	// the upstream rejects tokens used too soon after issue.
	NextPageToken string    `json:"next_page_token,omitempty"`
	TokenIssuedAt time.Time `json:"token_issued_at,omitempty"`

	PageCount int `json:"page_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Count returns the number of accumulated records
func (s *Session) Count() int {
	return len(s.Places)
}
