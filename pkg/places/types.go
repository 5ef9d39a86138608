package places

// Place is one search result, holding the fields extracted from the
// upstream response. Rating and UserRatingCount are pointers because the
// upstream omits them for unrated places and an absent value must stay
// distinguishable from zero all the way into the CSV export.
type Place struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	PrimaryType      string   `json:"primaryType"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingCount  *int     `json:"userRatingCount,omitempty"`
	BusinessStatus   string   `json:"businessStatus"`
}

// searchRequest is the places:searchText request body
type searchRequest struct {
	TextQuery string `json:"textQuery"`
	PageToken string `json:"pageToken,omitempty"`
}

// searchResponse is the places:searchText response body, limited to the
// fields requested by the field mask
type searchResponse struct {
	Places        []rawPlace `json:"places"`
	NextPageToken string     `json:"nextPageToken"`
}

// rawPlace mirrors the upstream place shape before flattening. The display
// name arrives as a localized text object.
type rawPlace struct {
	ID               string   `json:"id"`
	DisplayName      textNode `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	PrimaryType      string   `json:"primaryType"`
	Rating           *float64 `json:"rating"`
	UserRatingCount  *int     `json:"userRatingCount"`
	BusinessStatus   string   `json:"businessStatus"`
}

type textNode struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

// apiError is the upstream error envelope
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// record flattens a raw upstream place into a Place
func (p rawPlace) record() Place {
	return Place{
		ID:               p.ID,
		DisplayName:      p.DisplayName.Text,
		FormattedAddress: p.FormattedAddress,
		PrimaryType:      p.PrimaryType,
		Rating:           p.Rating,
		UserRatingCount:  p.UserRatingCount,
		BusinessStatus:   p.BusinessStatus,
	}
}
