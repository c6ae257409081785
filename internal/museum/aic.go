package museum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/psylabs/art-finder/pkg/mappings"
	"github.com/psylabs/art-finder/pkg/models"
)

const (
	aicBaseURL     = "https://api.artic.edu/api/v1/artworks/search"
	aicDefaultIIIF = "https://www.artic.edu/iiif/2"
)

// aicFields is the field list requested from the AIC search endpoint.
const aicFields = "id,title,artist_display,date_display,date_start,date_end," +
	"medium_display,department_title,classification_title,credit_line," +
	"image_id,thumbnail,place_of_origin,accession_number"

// AIC is the adapter for the Art Institute of Chicago API.
//
// AIC does not publish its department taxonomy, so the adapter accumulates
// every department title it sees into a per-instance set. That set is owned
// by a single logical session; the registry hands out a fresh instance per
// Resolve so sessions never contaminate each other.
type AIC struct {
	base
	BaseURL string
	Client  *httpClient

	mu         sync.Mutex
	discovered map[string]struct{}
}

func NewAIC() *AIC {
	return &AIC{
		base:       base{name: "Art Institute of Chicago", code: "AIC"},
		BaseURL:    aicBaseURL,
		Client:     newHTTPClient(defaultFetchTimeout),
		discovered: make(map[string]struct{}),
	}
}

type aicResponse struct {
	Config struct {
		IIIFURL string `json:"iiif_url"`
	} `json:"config"`
	Data []json.RawMessage `json:"data"`
}

type aicRecord struct {
	ID                  int    `json:"id"`
	Title               string `json:"title"`
	ArtistDisplay       string `json:"artist_display"`
	DateDisplay         string `json:"date_display"`
	DateStart           *int   `json:"date_start"`
	DateEnd             *int   `json:"date_end"`
	MediumDisplay       string `json:"medium_display"`
	DepartmentTitle     string `json:"department_title"`
	ClassificationTitle string `json:"classification_title"`
	CreditLine          string `json:"credit_line"`
	ImageID             string `json:"image_id"`
	Thumbnail           *struct {
		Width   *int   `json:"width"`
		Height  *int   `json:"height"`
		AltText string `json:"alt_text"`
	} `json:"thumbnail"`
	PlaceOfOrigin   string `json:"place_of_origin"`
	AccessionNumber string `json:"accession_number"`
}

// Search queries the AIC API and returns a structured result, applying
// department and year-range filters client-side since the search endpoint
// cannot express them.
func (a *AIC) Search(ctx context.Context, filters models.SearchFilters) models.AdapterResult {
	filters.Normalize()
	res := models.NewAdapterResult()

	a.infof("search started (limit=%d)", filters.Limit)

	artworks, err := a.doSearch(ctx, filters, &res)
	if err != nil {
		res.Errors = append(res.Errors, a.classify(err, a.Client.Timeout().Seconds()))
		return res
	}

	res.Artworks = artworks
	a.infof("search complete: %d artworks found", len(artworks))
	return res
}

func (a *AIC) doSearch(ctx context.Context, filters models.SearchFilters, res *models.AdapterResult) ([]models.Artwork, error) {
	params := url.Values{}
	params.Set("fields", aicFields)
	params.Set("limit", strconv.Itoa(filters.Limit))

	if filters.Query != "" {
		params.Set("q", filters.Query)
		res.FilterStatus.Applied["query"] = "Search term: " + filters.Query
	}

	// No server-side department parameter; map the canonical name now and
	// match each record's department_title against the mapped values.
	var deptValues []string
	if filters.Department != "" {
		deptValues = mappings.ToMuseum(filters.Department, "aic")
		if deptValues == nil {
			res.FilterStatus.Skipped["department"] = fmt.Sprintf("No AIC mapping for %q", filters.Department)
		} else {
			res.FilterStatus.Applied["department"] = fmt.Sprintf("Department: %s (client-side)", filters.Department)
		}
	}

	a.infof("fetching from AIC API (timeout=%.0fs, limit=%d)", a.Client.Timeout().Seconds(), filters.Limit)

	var payload aicResponse
	if err := a.Client.GetJSON(ctx, a.BaseURL, params, &payload); err != nil {
		return nil, err
	}

	iiifURL := payload.Config.IIIFURL
	if iiifURL == "" {
		iiifURL = aicDefaultIIIF
	}

	a.infof("received %d artworks from API", len(payload.Data))

	var artworks []models.Artwork
	var yearFiltered, deptFiltered, orientationFiltered, resolutionFiltered, noImage int

	for _, raw := range payload.Data {
		var item aicRecord
		if err := json.Unmarshal(raw, &item); err != nil {
			a.warnf("failed to parse artwork: %v", err)
			res.Warnings = append(res.Warnings, fmt.Sprintf("Skipped a malformed record from %s.", a.name))
			continue
		}

		// Feed discovery with every department seen, matching or not.
		if item.DepartmentTitle != "" {
			a.mu.Lock()
			a.discovered[item.DepartmentTitle] = struct{}{}
			a.mu.Unlock()
		}

		if len(deptValues) > 0 && !slices.Contains(deptValues, item.DepartmentTitle) {
			deptFiltered++
			continue
		}

		// A record passes the year filter when its date span overlaps the
		// requested range. Missing dates pass unfiltered.
		if filters.YearFrom != 0 && item.DateEnd != nil && *item.DateEnd < filters.YearFrom {
			yearFiltered++
			continue
		}
		if filters.YearTo != 0 && item.DateStart != nil && *item.DateStart > filters.YearTo {
			yearFiltered++
			continue
		}

		if item.ImageID == "" {
			noImage++
			continue
		}
		imageURL := fmt.Sprintf("%s/%s/full/843,/0/default.jpg", iiifURL, item.ImageID)

		var width, height *int
		description := ""
		if item.Thumbnail != nil {
			width, height = item.Thumbnail.Width, item.Thumbnail.Height
			description = item.Thumbnail.AltText
		}

		if filters.Orientation != "" && !matchesOrientation(width, height, filters.Orientation) {
			orientationFiltered++
			continue
		}
		if !matchesResolution(width, height, filters.MinWidth, filters.MinHeight) {
			resolutionFiltered++
			continue
		}

		title := item.Title
		if title == "" {
			title = "Untitled"
		}
		artist := item.ArtistDisplay
		if artist == "" {
			artist = "Unknown"
		}
		id := strconv.Itoa(item.ID)

		artworks = append(artworks, models.Artwork{
			ID:              id,
			Source:          a.code,
			Title:           title,
			Artist:          artist,
			ImageURL:        imageURL,
			Filename:        makeFilename(title, id, a.code),
			Date:            item.DateDisplay,
			Medium:          item.MediumDisplay,
			Department:      item.DepartmentTitle,
			Classification:  item.ClassificationTitle,
			Credit:          item.CreditLine,
			Culture:         item.PlaceOfOrigin,
			Description:     description,
			AccessionNumber: item.AccessionNumber,
			ImageWidth:      width,
			ImageHeight:     height,
		})

		if len(artworks) >= filters.Limit {
			break
		}
	}

	if filters.YearFrom != 0 || filters.YearTo != 0 {
		res.FilterStatus.Applied["year_range"] = fmt.Sprintf("Years %s to %s (client-side, filtered %d)",
			orAny(filters.YearFrom), orAny(filters.YearTo), yearFiltered)
	}
	if filters.Orientation != "" {
		res.FilterStatus.Applied["orientation"] = fmt.Sprintf("%s (filtered %d)", filters.Orientation, orientationFiltered)
	}
	if filters.MinWidth > 0 || filters.MinHeight > 0 {
		res.FilterStatus.Applied["resolution"] = fmt.Sprintf("Min %dx%d (filtered %d)",
			filters.MinWidth, filters.MinHeight, resolutionFiltered)
	}

	if yearFiltered > 0 {
		a.infof("filtered %d artworks by year range", yearFiltered)
	}
	if deptFiltered > 0 {
		a.infof("filtered %d artworks by department", deptFiltered)
	}
	if orientationFiltered > 0 {
		a.infof("filtered %d artworks by orientation", orientationFiltered)
	}
	if resolutionFiltered > 0 {
		a.infof("filtered %d artworks by resolution", resolutionFiltered)
	}
	if noImage > 0 {
		a.infof("skipped %d artworks without images", noImage)
	}

	return artworks, nil
}

// Departments returns the department titles discovered by searches run on
// this instance, sorted. Empty until the first search.
func (a *AIC) Departments() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.discovered))
	for d := range a.discovered {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func orAny(year int) string {
	if year == 0 {
		return "any"
	}
	return strconv.Itoa(year)
}
