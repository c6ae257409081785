package museum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/psylabs/art-finder/pkg/mappings"
	"github.com/psylabs/art-finder/pkg/models"
)

const cmaBaseURL = "https://openaccess-api.clevelandart.org/api/artworks"

// cmaDepartments is the museum's published department taxonomy. Unlike AIC,
// CMA documents this list, so it is curated statically.
var cmaDepartments = []string{
	"African Art",
	"American Painting and Sculpture",
	"Art of the Americas",
	"Chinese Art",
	"Contemporary Art",
	"Decorative Art and Design",
	"Drawings",
	"Egyptian and Ancient Near Eastern Art",
	"European Painting and Sculpture",
	"Greek and Roman Art",
	"Indian and South East Asian Art",
	"Islamic Art",
	"Japanese Art",
	"Korean Art",
	"Medieval Art",
	"Modern European Painting and Sculpture",
	"Oceania",
	"Performing Arts, Music, & Film",
	"Photography",
	"Prints",
	"Textiles",
}

// CMA is the adapter for the Cleveland Museum of Art Open Access API.
type CMA struct {
	base
	BaseURL string
	Client  *httpClient
}

func NewCMA() *CMA {
	return &CMA{
		base:    base{name: "Cleveland Museum of Art", code: "CMA"},
		BaseURL: cmaBaseURL,
		Client:  newHTTPClient(defaultFetchTimeout),
	}
}

type cmaResponse struct {
	Data []json.RawMessage `json:"data"`
}

type cmaRecord struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Creators []struct {
		Description string `json:"description"`
	} `json:"creators"`
	Culture            []string `json:"culture"`
	CreationDate       string   `json:"creation_date"`
	Technique          string   `json:"technique"`
	Department         string   `json:"department"`
	Type               string   `json:"type"`
	Creditline         string   `json:"creditline"`
	Dimensions         string   `json:"dimensions"`
	Description        string   `json:"description"`
	Tombstone          string   `json:"tombstone"`
	DidYouKnow         string   `json:"did_you_know"`
	ShareLicenseStatus string   `json:"share_license_status"`
	AccessionNumber    string   `json:"accession_number"`
	Images             struct {
		Web struct {
			URL    string `json:"url"`
			Width  *int   `json:"width"`
			Height *int   `json:"height"`
		} `json:"web"`
	} `json:"images"`
}

// Search queries the CMA API and returns a structured result. It never
// fails outright: fetch-level problems become Errors entries, bad records
// become warnings.
func (a *CMA) Search(ctx context.Context, filters models.SearchFilters) models.AdapterResult {
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

func (a *CMA) doSearch(ctx context.Context, filters models.SearchFilters, res *models.AdapterResult) ([]models.Artwork, error) {
	params := url.Values{}
	if filters.HasImage {
		params.Set("has_image", "1")
	}
	params.Set("limit", strconv.Itoa(filters.Limit))

	// CMA supports year range server-side.
	if filters.YearFrom != 0 {
		params.Set("created_after", strconv.Itoa(filters.YearFrom))
		res.FilterStatus.Applied["year_from"] = fmt.Sprintf("Created after %d", filters.YearFrom)
	}
	if filters.YearTo != 0 {
		params.Set("created_before", strconv.Itoa(filters.YearTo))
		res.FilterStatus.Applied["year_to"] = fmt.Sprintf("Created before %d", filters.YearTo)
	}

	// The API takes a single department string per call. When the
	// canonical name maps to several native departments, request the
	// first and keep the full set for a client-side any-of check.
	var deptValues []string
	if filters.Department != "" {
		deptValues = mappings.ToMuseum(filters.Department, "cma")
		if deptValues == nil {
			res.FilterStatus.Skipped["department"] = fmt.Sprintf("No CMA mapping for %q", filters.Department)
		} else {
			params.Set("department", deptValues[0])
			res.FilterStatus.Applied["department"] = "Department: " + strings.Join(deptValues, ", ")
		}
	}

	a.infof("fetching from CMA API (timeout=%.0fs, limit=%d)", a.Client.Timeout().Seconds(), filters.Limit)

	var payload cmaResponse
	if err := a.Client.GetJSON(ctx, a.BaseURL, params, &payload); err != nil {
		return nil, err
	}

	a.infof("received %d artworks from API", len(payload.Data))

	var artworks []models.Artwork
	var deptFiltered, orientationFiltered, resolutionFiltered, noImage int

	for _, raw := range payload.Data {
		var item cmaRecord
		if err := json.Unmarshal(raw, &item); err != nil {
			a.warnf("failed to parse artwork: %v", err)
			res.Warnings = append(res.Warnings, fmt.Sprintf("Skipped a malformed record from %s.", a.name))
			continue
		}

		imgURL := item.Images.Web.URL
		if imgURL == "" {
			noImage++
			continue
		}
		width, height := item.Images.Web.Width, item.Images.Web.Height

		if len(deptValues) > 1 && !slices.Contains(deptValues, item.Department) {
			deptFiltered++
			continue
		}
		if filters.Orientation != "" && !matchesOrientation(width, height, filters.Orientation) {
			orientationFiltered++
			continue
		}
		if !matchesResolution(width, height, filters.MinWidth, filters.MinHeight) {
			resolutionFiltered++
			continue
		}

		artist := "Unknown"
		if len(item.Creators) > 0 && item.Creators[0].Description != "" {
			artist = item.Creators[0].Description
		} else if len(item.Culture) > 0 && item.Culture[0] != "" {
			artist = item.Culture[0]
		}

		title := item.Title
		if title == "" {
			title = "Untitled"
		}
		id := strconv.Itoa(item.ID)

		artworks = append(artworks, models.Artwork{
			ID:              id,
			Source:          a.code,
			Title:           title,
			Artist:          artist,
			ImageURL:        imgURL,
			Filename:        makeFilename(title, id, a.code),
			Date:            item.CreationDate,
			Medium:          item.Technique,
			Department:      item.Department,
			Classification:  item.Type,
			Credit:          item.Creditline,
			Culture:         strings.Join(item.Culture, ", "),
			Dimensions:      item.Dimensions,
			Description:     item.Description,
			AccessionNumber: item.AccessionNumber,
			ImageWidth:      width,
			ImageHeight:     height,
			Metadata: map[string]string{
				"tombstone":            item.Tombstone,
				"did_you_know":         item.DidYouKnow,
				"share_license_status": item.ShareLicenseStatus,
			},
		})

		// Redundant safety cap: the API limit parameter already bounds
		// the fetch, but this also ends the loop early once client-side
		// filtering has let enough records through.
		if len(artworks) >= filters.Limit {
			break
		}
	}

	// Orientation and resolution count as applied whenever they were
	// evaluated, even if nothing got excluded.
	if filters.Orientation != "" {
		res.FilterStatus.Applied["orientation"] = fmt.Sprintf("%s (filtered %d)", filters.Orientation, orientationFiltered)
	}
	if filters.MinWidth > 0 || filters.MinHeight > 0 {
		res.FilterStatus.Applied["resolution"] = fmt.Sprintf("Min %dx%d (filtered %d)",
			filters.MinWidth, filters.MinHeight, resolutionFiltered)
	}

	if deptFiltered > 0 {
		a.infof("filtered out %d artworks by department", deptFiltered)
	}
	if orientationFiltered > 0 {
		a.infof("filtered out %d artworks by orientation", orientationFiltered)
	}
	if resolutionFiltered > 0 {
		a.infof("filtered out %d artworks by resolution", resolutionFiltered)
	}
	if noImage > 0 {
		a.infof("skipped %d artworks without images", noImage)
	}

	return artworks, nil
}

// Departments returns the curated CMA department list.
func (a *CMA) Departments() []string {
	out := make([]string, len(cmaDepartments))
	copy(out, cmaDepartments)
	return out
}
