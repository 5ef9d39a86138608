package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/placescout/placescout/internal/stores/session"
	"github.com/placescout/placescout/pkg/export"
	"github.com/placescout/placescout/pkg/places"
	"github.com/placescout/placescout/pkg/sdk"
	"github.com/placescout/placescout/pkg/utils"
)

// maxResults is the hard cap on records per session. The upstream text
// search never serves more than three pages of twenty
const maxResults = 60

// tokenValidityDelay is how long a page token needs to age before the
// upstream accepts it. Tokens used sooner come back invalid
const tokenValidityDelay = 3 * time.Second

// errMalformedSessionID marks session ids that are not valid UUIDs, which
// are a client mistake rather than an expired session
var errMalformedSessionID = errors.New("malformed session id")

// Service runs text searches against the places API and accumulates the
// results in per-session state
type Service struct {
	client     *places.Client
	sessions   *session.Store
	tokenDelay time.Duration
}

// Module-wide service instance
var searchService *Service

// NewService creates a search service from its dependencies
func NewService(client *places.Client, store *session.Store) *Service {
	return &Service{
		client:     client,
		sessions:   store,
		tokenDelay: tokenValidityDelay,
	}
}

// Init sets up the module-wide search service from config
func Init(cfg *utils.Config) error {
	apiKey, err := cfg.Require("GOOGLE_API_KEY")
	if err != nil {
		return err
	}

	opts, err := loadSessionOptions(cfg)
	if err != nil {
		return err
	}

	store, err := session.NewStore(opts)
	if err != nil {
		return err
	}

	client := places.NewClient(
		cfg.GetWithDefault("PLACES_BASE_URL", places.DefaultBaseURL),
		apiKey,
		cfg.GetDuration("PLACES_TIMEOUT", places.DefaultTimeout),
	)

	searchService = NewService(client, store)
	log.Println("[SEARCH]: search service initialized")

	return nil
}

// Shutdown stops the module-wide search service, ending the session store's
// background sweep. Safe to call when Init never ran.
func Shutdown() {
	if searchService == nil {
		return
	}

	searchService.sessions.Close()
	searchService = nil
}

// sessionConfig mirrors session store options in the optional yaml file
// pointed at by SESSION_CONFIG_PATH
type sessionConfig struct {
	TTL           string `yaml:"ttl"`
	MaxSessions   int    `yaml:"max_sessions"`
	SweepSchedule string `yaml:"sweep_schedule"`
}

// loadSessionOptions reads session store options from the configured yaml
// file, or returns zero options (store defaults) when none is set
func loadSessionOptions(cfg *utils.Config) (session.Options, error) {
	var opts session.Options

	path := cfg.Get("SESSION_CONFIG_PATH")
	if path == "" {
		return opts, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return opts, fmt.Errorf("session config file not found at %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read session config file: %w", err)
	}

	var fileCfg sessionConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return opts, fmt.Errorf("failed to parse session config file: %w", err)
	}

	if fileCfg.TTL != "" {
		ttl, err := time.ParseDuration(fileCfg.TTL)
		if err != nil {
			return opts, fmt.Errorf("invalid session ttl %q: %w", fileCfg.TTL, err)
		}
		opts.TTL = ttl
	}
	opts.MaxSessions = fileCfg.MaxSessions
	opts.SweepSchedule = fileCfg.SweepSchedule

	return opts, nil
}

// Search runs the first page of a new text search and opens a session
// holding its results
func (s *Service) Search(ctx context.Context, query string) (*sdk.SearchResponse, error) {
	records, nextToken, err := s.client.SearchText(ctx, query, "")
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Create(query, export.Filename(query))
	total, err := s.sessions.Append(sess.ID, records, nextToken)
	if err != nil {
		return nil, err
	}

	log.Printf("[SEARCH]: session %s opened for %q with %d records", sess.ID, query, total)

	return &sdk.SearchResponse{
		SessionID:  sess.ID.String(),
		Places:     records,
		HasMore:    hasMore(nextToken, total),
		TotalCount: total,
		Filename:   sess.Filename,
	}, nil
}

// More fetches the next page for an existing session. Sessions with no
// further pages return an empty increment rather than an error
func (s *Service) More(ctx context.Context, id string) (*sdk.SearchMoreResponse, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errMalformedSessionID, id)
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if sess.NextPageToken == "" || sess.Count() >= maxResults {
		return &sdk.SearchMoreResponse{
			Places:     []places.Place{},
			HasMore:    false,
			TotalCount: sess.Count(),
			PageCount:  sess.PageCount,
		}, nil
	}

	// Let the page token age into validity before spending it
	if err := s.waitForToken(ctx, sess.TokenIssuedAt); err != nil {
		return nil, fmt.Errorf("%w: %s", places.ErrUpstreamUnavailable, err)
	}

	records, nextToken, err := s.client.SearchText(ctx, sess.Query, sess.NextPageToken)
	if err != nil {
		return nil, err
	}

	total, err := s.sessions.Append(sessionID, records, nextToken)
	if err != nil {
		return nil, err
	}

	log.Printf("[SEARCH]: session %s grew to %d records", sessionID, total)

	return &sdk.SearchMoreResponse{
		Places:     records,
		HasMore:    hasMore(nextToken, total),
		TotalCount: total,
		PageCount:  sess.PageCount + 1,
	}, nil
}

// Export returns a snapshot of the session's accumulated records for
// download
func (s *Service) Export(id string) (session.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return session.Session{}, fmt.Errorf("%w: %q", errMalformedSessionID, id)
	}

	return s.sessions.Get(sessionID)
}

// hasMore reports whether another page is worth fetching: there has to be
// a token to spend and room left under the result cap
func hasMore(token string, total int) bool {
	return token != "" && total < maxResults
}

// waitForToken blocks until the given token issue time is old enough for
// the upstream to accept the token
func (s *Service) waitForToken(ctx context.Context, issuedAt time.Time) error {
	remaining := s.tokenDelay - time.Since(issuedAt)
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
