package search

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/psylabs/art-finder/internal/museum"
	"github.com/psylabs/art-finder/pkg/mappings"
	"github.com/psylabs/art-finder/pkg/models"
)

// Resolver turns a museum short code into an adapter instance.
type Resolver func(code string) (museum.Adapter, error)

// Handler exposes the search surface over HTTP. It holds one adapter
// instance per museum for its lifetime, making the server process the
// "single logical session" that owns each adapter's state (the AIC
// discovered-departments set in particular).
type Handler struct {
	resolver Resolver
	logFn    museum.LogFunc
	timeout  time.Duration

	mu       sync.Mutex
	adapters map[string]museum.Adapter
}

func NewHandler(resolver Resolver, logFn museum.LogFunc, timeout time.Duration) *Handler {
	return &Handler{
		resolver: resolver,
		logFn:    logFn,
		timeout:  timeout,
		adapters: make(map[string]museum.Adapter),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sources", h.listSources)                         // GET /sources
	rg.GET("/sources/:code/departments", h.sourceDepartments) // GET /sources/AIC/departments
	rg.GET("/departments", h.canonicalDepartments)            // GET /departments
	rg.POST("/search", h.search)                              // POST /search
}

// Search runs one search against the named museum. Adapter-level failures
// come back inside the result; the returned error is only for an unknown
// source code.
func (h *Handler) Search(ctx context.Context, source string, filters models.SearchFilters) (models.AdapterResult, error) {
	a, err := h.adapter(source)
	if err != nil {
		return models.AdapterResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return a.Search(ctx, filters), nil
}

func (h *Handler) adapter(code string) (museum.Adapter, error) {
	key := strings.ToUpper(strings.TrimSpace(code))

	h.mu.Lock()
	defer h.mu.Unlock()

	if a, ok := h.adapters[key]; ok {
		return a, nil
	}
	a, err := h.resolver(key)
	if err != nil {
		return nil, err
	}
	a.SetLogger(h.logFn)
	h.adapters[key] = a
	return a, nil
}

type searchRequest struct {
	Source string `json:"source"`
	models.SearchFilters
}

func (h *Handler) search(c *gin.Context) {
	req := searchRequest{SearchFilters: models.DefaultFilters()}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source required"})
		return
	}

	result, err := h.Search(c.Request.Context(), req.Source, req.SearchFilters)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Adapter failures are data, not HTTP errors: the result carries them.
	c.JSON(http.StatusOK, result)
}

func (h *Handler) listSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": museum.ListAll()})
}

func (h *Handler) sourceDepartments(c *gin.Context) {
	code := c.Param("code")
	a, err := h.adapter(code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source":      a.Code(),
		"departments": a.Departments(),
	})
}

func (h *Handler) canonicalDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"departments": mappings.CanonicalDepartments()})
}
