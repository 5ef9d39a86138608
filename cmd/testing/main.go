package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/placescout/placescout/pkg/places"
	"github.com/placescout/placescout/pkg/utils"
)

// Scratch harness for poking the text search endpoint directly and
// inspecting the raw response body outside the typed client
func main() {
	// Load global configuration
	cfg := utils.NewConfigFromEnv(".env")

	apiKey, err := cfg.Require("GOOGLE_API_KEY")
	if err != nil {
		log.Fatalf("[TESTING]: %v", err)
	}

	url := cfg.GetWithDefault("PLACES_BASE_URL", places.DefaultBaseURL) + "/places:searchText"

	body, err := json.Marshal(map[string]string{
		"textQuery": "restaurants in Raleigh North Carolina",
	})
	if err != nil {
		log.Fatalf("[TESTING]: failed to encode request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("[TESTING]: failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", apiKey)

	// Wildcard mask so the dump shows every field the endpoint can return
	req.Header.Set("X-Goog-FieldMask", "*")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("[TESTING]: request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("[TESTING]: failed to read response: %v", err)
	}

	fmt.Printf("Status: %s\n", resp.Status)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Write(raw)
	}
	fmt.Println(pretty.String())

	// Keep a copy on disk for diffing field masks between runs
	filename := fmt.Sprintf("places_response_%s.json", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filename, pretty.Bytes(), 0644); err != nil {
		log.Fatalf("[TESTING]: failed to write %s: %v", filename, err)
	}

	fmt.Printf("Response saved to %s\n", filename)
}
