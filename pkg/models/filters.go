package models

// Orientation filter values accepted by SearchFilters.
const (
	OrientationPortrait  = "Portrait"
	OrientationLandscape = "Landscape"
)

// DefaultLimit bounds a search when the caller does not specify one.
const DefaultLimit = 100

// SearchFilters is the caller's museum-agnostic filter intent. Adapters
// translate it into whatever their museum's API can express and apply the
// rest client-side; they never mutate it.
//
// Zero values mean "unset" for everything except HasImage and Limit, which
// have real defaults (see DefaultFilters).
type SearchFilters struct {
	Query       string `json:"query,omitempty"`       // free-text search term (AIC only)
	YearFrom    int    `json:"year_from,omitempty"`   // earliest creation year, inclusive
	YearTo      int    `json:"year_to,omitempty"`     // latest creation year, inclusive
	Department  string `json:"department,omitempty"`  // canonical department name, not a native one
	Orientation string `json:"orientation,omitempty"` // "Portrait" or "Landscape"
	MinWidth    int    `json:"min_width,omitempty"`   // minimum image width in pixels
	MinHeight   int    `json:"min_height,omitempty"`  // minimum image height in pixels
	HasImage    bool   `json:"has_image"`
	Limit       int    `json:"limit"`
}

// DefaultFilters returns a SearchFilters with the documented defaults set.
// Unmarshal request bodies into this so absent fields keep their defaults.
func DefaultFilters() SearchFilters {
	return SearchFilters{
		HasImage: true,
		Limit:    DefaultLimit,
	}
}

// Normalize clamps nonsense values back to the defaults.
func (f *SearchFilters) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
}
