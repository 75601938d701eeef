package dto

import (
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination метаданные постраничной выдачи.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// CandidateListResponse ответ GET /api/candidates.
type CandidateListResponse struct {
	Data             []search.CandidateView `json:"data"`
	Pagination       Pagination             `json:"pagination"`
	Strategy         search.Strategy        `json:"strategy"`
	HasActiveFilters bool                   `json:"has_active_filters"`
}

// NewCandidateListResponse собирает ответ из страницы движка.
func NewCandidateListResponse(p search.Page, f models.FilterState) CandidateListResponse {
	return CandidateListResponse{
		Data: p.Items,
		Pagination: Pagination{
			Page:       p.Page,
			PageSize:   p.PageSize,
			Total:      p.TotalCount,
			TotalPages: p.TotalPages,
		},
		Strategy:         p.Strategy,
		HasActiveFilters: search.HasActiveFilters(f),
	}
}

// TeamListResponse ответ GET /api/teams.
type TeamListResponse struct {
	Data     []models.Team `json:"data"`
	Count    int           `json:"count"`
	MaxTeams int           `json:"max_teams"`
}

// DashboardResponse ответ GET /api/dashboard.
type DashboardResponse struct {
	Candidates    CandidateListResponse `json:"candidates"`
	FilterOptions models.FilterOptions  `json:"filter_options"`
	Teams         []models.Team         `json:"teams"`
}

// SeedResponse результат импорта профилей.
type SeedResponse struct {
	Imported int `json:"imported"`
}

// TokenResponse выданный токен разработчика.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
