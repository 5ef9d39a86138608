package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/placescout/placescout/pkg/export"
	"github.com/placescout/placescout/pkg/places"
	"github.com/placescout/placescout/pkg/utils"
)

// maxResults caps a run at the three pages the text search will serve
const maxResults = 60

// tokenValidityDelay is how long to wait before a fresh page token works
const tokenValidityDelay = 3 * time.Second

// Searcher is a wrapper for managing the places client and the CSV file a
// run accumulates into
type Searcher struct {
	client   *places.Client
	filename string
	results  []places.Place
}

func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	apiKey, err := cfg.Require("GOOGLE_API_KEY")
	if err != nil {
		log.Fatalf("[COMMANDLINE]: %v", err)
	}

	// Create the searcher with a configured places client
	searcher := &Searcher{
		client: places.NewClient(
			cfg.GetWithDefault("PLACES_BASE_URL", places.DefaultBaseURL),
			apiKey,
			cfg.GetDuration("PLACES_TIMEOUT", places.DefaultTimeout),
		),
	}

	// Start interactive session
	ctx := context.Background()
	if err := searcher.startInteractiveSession(ctx); err != nil {
		log.Fatalf("[COMMANDLINE]: %v", err)
	}
}

// startInteractiveSession prompts for a query, then fetches pages one at a
// time as long as the user keeps asking for them
func (s *Searcher) startInteractiveSession(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Enter search query (e.g., 'plumbers in Raleigh North Carolina'): ")
	if !scanner.Scan() {
		return scanner.Err()
	}

	query := strings.TrimSpace(scanner.Text())
	if query == "" {
		fmt.Println("No search query provided. Exiting.")
		return nil
	}

	s.filename = export.Filename(query)

	// First page starts the file over, replacing any previous run
	records, nextToken, err := s.client.SearchText(ctx, query, "")
	if err != nil {
		return err
	}
	if err := s.save(records, false); err != nil {
		return err
	}
	fmt.Printf("Fetched %d results (%d total)\n", len(records), len(s.results))

	// Keep fetching while pages remain and the user wants them
	for nextToken != "" && len(s.results) < maxResults {
		fmt.Print("\nFetch next page? (Y/n): ")
		if !scanner.Scan() {
			break
		}

		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "" && answer != "y" && answer != "yes" {
			break
		}

		fmt.Println("Waiting for next page token to become valid...")
		time.Sleep(tokenValidityDelay)

		records, nextToken, err = s.client.SearchText(ctx, query, nextToken)
		if err != nil {
			return err
		}
		if err := s.save(records, true); err != nil {
			return err
		}
		fmt.Printf("Fetched %d results (%d total)\n", len(records), len(s.results))
	}

	s.printSummary()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

// save writes the records through to the CSV file and tracks the running
// list for the final summary
func (s *Searcher) save(records []places.Place, appendMode bool) error {
	if err := export.AppendFile(s.filename, records, appendMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.filename, err)
	}

	s.results = append(s.results, records...)
	return nil
}

// printSummary lists everything the run collected
func (s *Searcher) printSummary() {
	fmt.Printf("\nFinal Summary:\n")
	fmt.Printf("Total places found: %d\n", len(s.results))
	fmt.Printf("Results written to %s\n", s.filename)

	if len(s.results) == 0 {
		return
	}

	fmt.Println("\nAll results:")
	for i, place := range s.results {
		fmt.Printf("%d. %s - %s\n", i+1, place.DisplayName, place.FormattedAddress)
	}
}
