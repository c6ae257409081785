package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/psylabs/art-finder/internal/download"
	"github.com/psylabs/art-finder/pkg/models"
)

// Searcher runs a search against a named museum. Implemented by the search
// handler; the session layer only consumes its output.
type Searcher interface {
	Search(ctx context.Context, source string, filters models.SearchFilters) (models.AdapterResult, error)
}

type Handler struct {
	store    *Store
	searcher Searcher
	fetcher  *download.Fetcher
}

func NewHandler(store *Store, searcher Searcher, fetcher *download.Fetcher) *Handler {
	return &Handler{store: store, searcher: searcher, fetcher: fetcher}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.create)
	rg.GET("/sessions/:id", h.get)
	rg.GET("/sessions/:id/current", h.current)
	rg.GET("/sessions/:id/current/image", h.currentImage)
	rg.POST("/sessions/:id/decision", h.decide)
	rg.GET("/sessions/:id/kept", h.kept)
	rg.DELETE("/sessions/:id", h.remove)
}

type createReq struct {
	Source string `json:"source"`
	models.SearchFilters
}

func (h *Handler) create(c *gin.Context) {
	req := createReq{SearchFilters: models.DefaultFilters()}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source required"})
		return
	}

	result, err := h.searcher.Search(c.Request.Context(), req.Source, req.SearchFilters)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A failed search cannot seed a session; the caller still gets the
	// structured result to display.
	if len(result.Errors) > 0 {
		c.JSON(http.StatusOK, gin.H{"result": result})
		return
	}

	summary := h.store.Create(strings.ToUpper(strings.TrimSpace(req.Source)), result.Artworks)
	c.JSON(http.StatusCreated, gin.H{"session": summary, "result": result})
}

func (h *Handler) get(c *gin.Context) {
	summary, err := h.store.Summary(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) current(c *gin.Context) {
	art, err := h.store.Current(c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		notFound(c)
	case errors.Is(err, ErrExhausted):
		c.JSON(http.StatusOK, gin.H{"done": true})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"done": false, "artwork": art})
	}
}

func (h *Handler) currentImage(c *gin.Context) {
	art, err := h.store.Current(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	body, contentType, err := h.fetcher.Fetch(c.Request.Context(), art.ImageURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "image download failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	c.Data(http.StatusOK, contentType, body)
}

type decideReq struct {
	Action string `json:"action"` // "keep" or "skip"
}

func (h *Handler) decide(c *gin.Context) {
	var req decideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var decision Decision
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "keep":
		decision = DecisionKeep
	case "skip":
		decision = DecisionSkip
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be keep or skip"})
		return
	}

	next, done, err := h.store.Decide(c.Param("id"), decision)
	switch {
	case errors.Is(err, ErrNotFound):
		notFound(c)
	case errors.Is(err, ErrExhausted):
		c.JSON(http.StatusConflict, gin.H{"error": "session already reviewed to the end"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "decision failed"})
	case done:
		c.JSON(http.StatusOK, gin.H{"done": true})
	default:
		c.JSON(http.StatusOK, gin.H{"done": false, "artwork": next})
	}
}

func (h *Handler) kept(c *gin.Context) {
	kept, err := h.store.Kept(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(kept), "artworks": kept})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		notFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
}
