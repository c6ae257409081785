package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/psylabs/art-finder/internal/museum"
	"github.com/psylabs/art-finder/pkg/models"
)

type stubAdapter struct {
	code        string
	name        string
	result      models.AdapterResult
	departments []string
	lastFilters models.SearchFilters
	searches    int
}

func (s *stubAdapter) Name() string             { return s.name }
func (s *stubAdapter) Code() string             { return s.code }
func (s *stubAdapter) Departments() []string    { return s.departments }
func (s *stubAdapter) SetLogger(museum.LogFunc) {}

func (s *stubAdapter) Search(_ context.Context, filters models.SearchFilters) models.AdapterResult {
	s.searches++
	s.lastFilters = filters
	return s.result
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router.Group(""))
	return router
}

func stubResolver(adapters map[string]*stubAdapter, resolved *int) Resolver {
	return func(code string) (museum.Adapter, error) {
		a, ok := adapters[code]
		if !ok {
			return nil, fmt.Errorf("unknown museum %q (available: CMA, AIC)", code)
		}
		if resolved != nil {
			*resolved++
		}
		return a, nil
	}
}

func TestSearchEndpoint(t *testing.T) {
	cma := &stubAdapter{
		code: "CMA",
		name: "Cleveland Museum of Art",
		result: models.AdapterResult{
			Artworks:     []models.Artwork{{ID: "1", Source: "CMA", Title: "Work"}},
			Errors:       []string{},
			Warnings:     []string{},
			FilterStatus: models.NewFilterStatus(),
		},
	}
	h := NewHandler(stubResolver(map[string]*stubAdapter{"CMA": cma}, nil), nil, time.Second)
	router := newTestRouter(h)

	body := `{"source":"cma","department":"Asian Art","limit":50}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var got models.AdapterResult
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Artworks) != 1 || got.Artworks[0].ID != "1" {
		t.Errorf("artworks = %v", got.Artworks)
	}

	if cma.lastFilters.Department != "Asian Art" || cma.lastFilters.Limit != 50 {
		t.Errorf("filters passed through wrong: %+v", cma.lastFilters)
	}
	// has_image defaults true when the body omits it.
	if !cma.lastFilters.HasImage {
		t.Error("has_image default lost")
	}
}

func TestSearchEndpointDefaultsLimit(t *testing.T) {
	cma := &stubAdapter{code: "CMA", result: models.NewAdapterResult()}
	h := NewHandler(stubResolver(map[string]*stubAdapter{"CMA": cma}, nil), nil, time.Second)
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"source":"CMA"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if cma.lastFilters.Limit != models.DefaultLimit {
		t.Errorf("limit = %d, want default %d", cma.lastFilters.Limit, models.DefaultLimit)
	}
}

func TestSearchEndpointUnknownSource(t *testing.T) {
	h := NewHandler(stubResolver(map[string]*stubAdapter{}, nil), nil, time.Second)
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"source":"MET"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "MET") {
		t.Errorf("body = %s, want unknown code named", w.Body.String())
	}
}

func TestSearchEndpointRequiresSource(t *testing.T) {
	h := NewHandler(stubResolver(map[string]*stubAdapter{}, nil), nil, time.Second)
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"limit":5}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAdapterInstanceReusedAcrossRequests(t *testing.T) {
	aic := &stubAdapter{code: "AIC", result: models.NewAdapterResult()}
	resolved := 0
	h := NewHandler(stubResolver(map[string]*stubAdapter{"AIC": aic}, &resolved), nil, time.Second)
	router := newTestRouter(h)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"source":"AIC"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	}

	// One resolve, three searches: the server session owns one instance
	// per museum so AIC department discovery can accumulate.
	if resolved != 1 {
		t.Errorf("resolved %d times, want 1", resolved)
	}
	if aic.searches != 3 {
		t.Errorf("searches = %d, want 3", aic.searches)
	}
}

func TestSourceDepartmentsEndpoint(t *testing.T) {
	aic := &stubAdapter{code: "AIC", departments: []string{"Asian Art", "Modern Art"}}
	h := NewHandler(stubResolver(map[string]*stubAdapter{"AIC": aic}, nil), nil, time.Second)
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sources/aic/departments", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got struct {
		Source      string   `json:"source"`
		Departments []string `json:"departments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Source != "AIC" || len(got.Departments) != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestCanonicalDepartmentsEndpoint(t *testing.T) {
	h := NewHandler(stubResolver(map[string]*stubAdapter{}, nil), nil, time.Second)
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/departments", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got struct {
		Departments []string `json:"departments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Departments) != 16 {
		t.Errorf("got %d canonical departments, want 16", len(got.Departments))
	}
}

func TestListSourcesEndpoint(t *testing.T) {
	h := NewHandler(stubResolver(map[string]*stubAdapter{}, nil), nil, time.Second)
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sources", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got struct {
		Sources []museum.Info `json:"sources"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Sources) != 2 {
		t.Errorf("sources = %v", got.Sources)
	}
}
