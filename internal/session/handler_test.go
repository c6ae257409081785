package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/psylabs/art-finder/internal/download"
	"github.com/psylabs/art-finder/pkg/models"
)

type stubSearcher struct {
	result models.AdapterResult
	err    error
}

func (s *stubSearcher) Search(context.Context, string, models.SearchFilters) (models.AdapterResult, error) {
	return s.result, s.err
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router.Group(""))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSessionFromSearch(t *testing.T) {
	searcher := &stubSearcher{
		result: models.AdapterResult{
			Artworks:     testArtworks(2),
			Errors:       []string{},
			Warnings:     []string{},
			FilterStatus: models.NewFilterStatus(),
		},
	}
	h := NewHandler(NewStore(), searcher, download.NewFetcher(time.Second))
	router := newTestRouter(h)

	w := postJSON(router, "/sessions", `{"source":"CMA","limit":10}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var got struct {
		Session Summary              `json:"session"`
		Result  models.AdapterResult `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Session.ID == "" || got.Session.Total != 2 {
		t.Errorf("session = %+v", got.Session)
	}
	if len(got.Result.Artworks) != 2 {
		t.Errorf("result artworks = %d", len(got.Result.Artworks))
	}
}

func TestCreateSessionFailedSearch(t *testing.T) {
	searcher := &stubSearcher{
		result: models.AdapterResult{
			Artworks:     []models.Artwork{},
			Errors:       []string{"Cleveland Museum of Art took too long to respond. Try again or reduce the limit."},
			Warnings:     []string{},
			FilterStatus: models.NewFilterStatus(),
		},
	}
	h := NewHandler(NewStore(), searcher, download.NewFetcher(time.Second))
	router := newTestRouter(h)

	w := postJSON(router, "/sessions", `{"source":"CMA"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), `"session"`) {
		t.Error("failed search must not create a session")
	}
	if !strings.Contains(w.Body.String(), "took too long") {
		t.Error("search errors must reach the caller")
	}
}

func TestCreateSessionUnknownSource(t *testing.T) {
	searcher := &stubSearcher{err: errors.New(`unknown museum "MET" (available: CMA, AIC)`)}
	h := NewHandler(NewStore(), searcher, download.NewFetcher(time.Second))
	router := newTestRouter(h)

	w := postJSON(router, "/sessions", `{"source":"MET"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestReviewOverHTTP(t *testing.T) {
	searcher := &stubSearcher{
		result: models.AdapterResult{
			Artworks:     testArtworks(2),
			FilterStatus: models.NewFilterStatus(),
		},
	}
	h := NewHandler(NewStore(), searcher, download.NewFetcher(time.Second))
	router := newTestRouter(h)

	w := postJSON(router, "/sessions", `{"source":"CMA"}`)
	var created struct {
		Session Summary `json:"session"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	id := created.Session.ID

	// Current artwork is the first one.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/current", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":"1"`) {
		t.Fatalf("current: status=%d body=%s", w.Code, w.Body.String())
	}

	// Keep it, advancing to the second.
	w = postJSON(router, "/sessions/"+id+"/decision", `{"action":"keep"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":"2"`) {
		t.Fatalf("decision 1: status=%d body=%s", w.Code, w.Body.String())
	}

	// Skip the last, finishing the review.
	w = postJSON(router, "/sessions/"+id+"/decision", `{"action":"skip"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"done":true`) {
		t.Fatalf("decision 2: status=%d body=%s", w.Code, w.Body.String())
	}

	// One more decision conflicts.
	w = postJSON(router, "/sessions/"+id+"/decision", `{"action":"keep"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("decision past end: status=%d", w.Code)
	}

	// Kept list has the first artwork only.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/kept", nil))
	var kept struct {
		Total    int              `json:"total"`
		Artworks []models.Artwork `json:"artworks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &kept); err != nil {
		t.Fatal(err)
	}
	if kept.Total != 1 || kept.Artworks[0].ID != "1" {
		t.Errorf("kept = %+v", kept)
	}

	// Delete and verify it is gone.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status=%d", w.Code)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: status=%d", w.Code)
	}
}

func TestDecisionValidation(t *testing.T) {
	h := NewHandler(NewStore(), &stubSearcher{result: models.NewAdapterResult()}, download.NewFetcher(time.Second))
	router := newTestRouter(h)

	w := postJSON(router, "/sessions/whatever/decision", `{"action":"maybe"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCurrentImageDownload(t *testing.T) {
	imgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer imgSrv.Close()

	art := models.Artwork{
		ID:       "1",
		Source:   "CMA",
		Title:    "Work",
		ImageURL: imgSrv.URL,
		Filename: "CMA-Work-1.jpg",
	}
	searcher := &stubSearcher{result: models.AdapterResult{
		Artworks:     []models.Artwork{art},
		FilterStatus: models.NewFilterStatus(),
	}}
	h := NewHandler(NewStore(), searcher, download.NewFetcher(time.Second))
	router := newTestRouter(h)

	w := postJSON(router, "/sessions", `{"source":"CMA"}`)
	var created struct {
		Session Summary `json:"session"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+created.Session.ID+"/current/image", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != "jpeg-bytes" {
		t.Errorf("body = %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "CMA-Work-1.jpg") {
		t.Errorf("content disposition = %q", cd)
	}
}
