package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macrolens/maxprotein/internal/domain"
)

const (
	serviceName = "maxprotein-backend"

	defaultFoodsLimit = 50
	maxFoodsLimit     = 1000
)

// SelectionUsecase is what the handlers need from the selection service
type SelectionUsecase interface {
	Select(ctx context.Context, algorithm domain.Algorithm, request *domain.SelectionRequest) (*domain.Selection, error)
	Compare(ctx context.Context, request *domain.SelectionRequest) (*domain.Comparison, error)
}

// CatalogUsecase is what the handlers need from the food catalog
type CatalogUsecase interface {
	Load(ctx context.Context) (int, error)
	Foods() ([]domain.Food, error)
	Size() int
	LoadedAt() time.Time
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	selections SelectionUsecase
	catalog    CatalogUsecase
	version    string
}

// NewHandler creates a new HTTP handler reporting version on /health.
// Either dependency may be nil, in which case the endpoints using it answer 503.
func NewHandler(selections SelectionUsecase, catalog CatalogUsecase, version string) *Handler {
	return &Handler{
		selections: selections,
		catalog:    catalog,
		version:    version,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	foods := 0
	var loadedAt *time.Time
	if h.catalog != nil {
		foods = h.catalog.Size()
		if t := h.catalog.LoadedAt(); !t.IsZero() {
			loadedAt = &t
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"service":         serviceName,
		"version":         h.version,
		"foods":           foods,
		"catalogLoadedAt": loadedAt,
	})
}

// SelectGreedy handles greedy selection requests
func (h *Handler) SelectGreedy(c *gin.Context) {
	h.selectWith(c, domain.AlgorithmGreedy)
}

// SelectExhaustive handles exhaustive selection requests
func (h *Handler) SelectExhaustive(c *gin.Context) {
	h.selectWith(c, domain.AlgorithmExhaustive)
}

func (h *Handler) selectWith(c *gin.Context, algorithm domain.Algorithm) {
	if h.selections == nil {
		notConfigured(c)
		return
	}

	request, ok := bindSelectionRequest(c)
	if !ok {
		return
	}

	result, err := h.selections.Select(c.Request.Context(), algorithm, request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Compare runs both algorithms on the same parameters
func (h *Handler) Compare(c *gin.Context) {
	if h.selections == nil {
		notConfigured(c)
		return
	}

	request, ok := bindSelectionRequest(c)
	if !ok {
		return
	}

	result, err := h.selections.Compare(c.Request.Context(), request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListFoods returns the first foods of the catalog
func (h *Handler) ListFoods(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c)
		return
	}

	limit := defaultFoodsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxFoodsLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 1000"})
			return
		}
		limit = n
	}

	foods, err := h.catalog.Foods()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(foods),
		"foods": foods[:min(limit, len(foods))],
	})
}

// ReloadCatalog re-reads the catalog from its source
func (h *Handler) ReloadCatalog(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c)
		return
	}

	n, err := h.catalog.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": n})
}

// bindSelectionRequest decodes an optional JSON body; an empty body means all defaults
func bindSelectionRequest(c *gin.Context) (*domain.SelectionRequest, bool) {
	var request domain.SelectionRequest
	if c.Request.ContentLength == 0 {
		return &request, true
	}

	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return nil, false
	}
	return &request, true
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrTooManyCandidates):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCatalogUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "requestID", c.GetString(requestIDKey), "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func notConfigured(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service not configured"})
}
