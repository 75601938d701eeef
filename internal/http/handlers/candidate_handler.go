package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/http/handlers/common"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
)

// CandidateQueries операции чтения кандидатов.
type CandidateQueries interface {
	Page(ctx context.Context, page int, f models.FilterState, sel *search.SelectionSet) search.Page
	FilterOptions(ctx context.Context) (models.FilterOptions, error)
	Get(ctx context.Context, id string) (*models.Candidate, error)
	InvalidateCache(ctx context.Context) error
}

// CandidateHandler обслуживает поиск кандидатов.
type CandidateHandler struct {
	candidates CandidateQueries
}

// NewCandidateHandler создаёт хэндлер кандидатов.
func NewCandidateHandler(candidates CandidateQueries) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

// List обрабатывает GET /api/candidates.
func (h *CandidateHandler) List(c *gin.Context) {
	var query dto.ListCandidatesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondBadRequest(c, "некорректные параметры поиска: "+err.Error())
		return
	}

	filters := query.FilterState()
	page := h.candidates.Page(c.Request.Context(), query.PageOrDefault(), filters, query.Selection())
	c.JSON(http.StatusOK, dto.NewCandidateListResponse(page, filters))
}

// Filters обрабатывает GET /api/candidates/filters.
func (h *CandidateHandler) Filters(c *gin.Context) {
	opts, err := h.candidates.FilterOptions(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// Get обрабатывает GET /api/candidates/:id.
func (h *CandidateHandler) Get(c *gin.Context) {
	candidate, err := h.candidates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// InvalidateCache обрабатывает POST /api/admin/cache/invalidate.
func (h *CandidateHandler) InvalidateCache(c *gin.Context) {
	if err := h.candidates.InvalidateCache(c.Request.Context()); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, http.StatusOK, "кэш очищен", nil)
}
