package export

import (
	"regexp"
	"strings"
)

var (
	locationPattern  = regexp.MustCompile(`(?i)in\s+([^,]+)`)
	invalidPattern   = regexp.MustCompile(`[^\w\s-]`)
	separatorPattern = regexp.MustCompile(`[-\s]+`)
)

// Filename derives a download filename from the search query, shaped as
// "<city>_<business type>_results.csv". Queries like "coffee in Austin"
// split on the "in <location>" pattern; without one, the last two words
// stand in for the location and the first word for the business type.
func Filename(query string) string {
	var city string
	if m := locationPattern.FindStringSubmatch(query); m != nil {
		city = strings.TrimSpace(m[1])
	} else {
		parts := strings.Fields(query)
		if len(parts) > 2 {
			city = parts[len(parts)-2] + "_" + parts[len(parts)-1]
		} else {
			city = "search_results"
		}
	}

	businessType := ""
	if strings.Contains(strings.ToLower(query), " in ") {
		businessType = strings.TrimSpace(strings.SplitN(query, " in ", 2)[0])
	} else if parts := strings.Fields(query); len(parts) > 0 {
		businessType = parts[0]
	}

	return sanitize(city) + "_" + sanitize(businessType) + "_results.csv"
}

// sanitize strips filename-hostile characters and collapses separator runs
// to single underscores
func sanitize(s string) string {
	s = strings.TrimSpace(invalidPattern.ReplaceAllString(s, ""))
	return separatorPattern.ReplaceAllString(s, "_")
}
