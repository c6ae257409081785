package models

// FilterStatus tracks, per search, which filters were honored and which
// could not be. A filter name appears in at most one of the two maps.
type FilterStatus struct {
	Applied map[string]string `json:"applied"` // filter name -> human description
	Skipped map[string]string `json:"skipped"` // filter name -> reason
}

func NewFilterStatus() FilterStatus {
	return FilterStatus{
		Applied: make(map[string]string),
		Skipped: make(map[string]string),
	}
}

// AdapterResult is the complete outcome of one Search call. It is always
// returned, even on failure: transport and protocol problems surface as
// Errors entries, never as a raised error.
type AdapterResult struct {
	Artworks     []Artwork    `json:"artworks"`
	Errors       []string     `json:"errors"`   // user-facing; non-empty only on fatal failure
	Warnings     []string     `json:"warnings"` // non-fatal issues, e.g. malformed records
	FilterStatus FilterStatus `json:"filter_status"`
}

func NewAdapterResult() AdapterResult {
	return AdapterResult{
		Artworks:     []Artwork{},
		Errors:       []string{},
		Warnings:     []string{},
		FilterStatus: NewFilterStatus(),
	}
}

// Success reports whether the search produced results without fatal errors.
// An empty artwork list with no errors still counts as success (no matches).
func (r *AdapterResult) Success() bool {
	return len(r.Artworks) > 0 || len(r.Errors) == 0
}

// HasWarnings reports whether anything non-fatal deserves the caller's
// attention.
func (r *AdapterResult) HasWarnings() bool {
	return len(r.Warnings) > 0 || len(r.FilterStatus.Skipped) > 0
}
