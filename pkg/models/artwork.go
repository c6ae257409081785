package models

// Artwork is the normalized, museum-agnostic form of a single record.
//
// Every museum adapter maps its own API response into this structure first;
// everything downstream (the API surface, review sessions, the CLI) only
// ever sees Artwork.
type Artwork struct {
	ID       string `json:"id"`        // museum-local identifier, unique per source only
	Source   string `json:"source"`    // museum short code, e.g. "CMA", "AIC"
	Title    string `json:"title"`     // display title
	Artist   string `json:"artist"`    // primary artist or culture fallback
	ImageURL string `json:"image_url"` // resolvable image URL (always present)
	Filename string `json:"filename"`  // suggested collision-resistant download name

	Date            string `json:"date,omitempty"`
	Medium          string `json:"medium,omitempty"`
	Department      string `json:"department,omitempty"`
	Classification  string `json:"classification,omitempty"`
	Credit          string `json:"credit,omitempty"`
	Culture         string `json:"culture,omitempty"`
	Dimensions      string `json:"dimensions,omitempty"`
	Description     string `json:"description,omitempty"`
	AccessionNumber string `json:"accession_number,omitempty"`

	// Image pixel dimensions, used only for orientation/resolution
	// filtering. nil means unknown, not zero.
	ImageWidth  *int `json:"image_width,omitempty"`
	ImageHeight *int `json:"image_height,omitempty"`

	// Metadata carries source-specific extras that have no canonical
	// slot (e.g. the CMA tombstone text).
	Metadata map[string]string `json:"metadata,omitempty"`
}
