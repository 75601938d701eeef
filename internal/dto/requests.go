package dto

import (
	"strings"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
	"github.com/ignatzorin/teambuilder-backend/internal/validation"
)

// ListCandidatesQuery параметры GET /api/candidates. Мультизначения принимаются
// повтором параметра; skills и selected также через запятую. Локации и компании
// сами содержат запятые, поэтому не разбиваются.
type ListCandidatesQuery struct {
	Page            int      `form:"page" binding:"omitempty,min=1"`
	SortBy          string   `form:"sort_by" binding:"omitempty,sortkey"`
	Query           string   `form:"q" binding:"max=200"`
	Location        []string `form:"location"`
	Skills          []string `form:"skills"`
	Companies       []string `form:"companies"`
	EducationLevel  string   `form:"education_level"`
	Subject         string   `form:"subject"`
	Availability    string   `form:"availability"`
	ExperienceLevel string   `form:"experience_level" binding:"omitempty,explevel"`
	RoleType        string   `form:"role_type"`
	SalaryMin       *int     `form:"salary_min" binding:"omitempty,min=0"`
	SalaryMax       *int     `form:"salary_max" binding:"omitempty,min=0"`
	ShowSelected    bool     `form:"show_selected"`
	Selected        []string `form:"selected"`
}

// PageOrDefault номер страницы; отсутствующий параметр означает первую.
func (q *ListCandidatesQuery) PageOrDefault() int {
	if q.Page == 0 {
		return 1
	}
	return q.Page
}

// FilterState переводит параметры запроса в состояние фильтров.
func (q *ListCandidatesQuery) FilterState() models.FilterState {
	f := models.DefaultFilterState()
	f.SearchTerm = validation.SanitizeSearchTerm(q.Query)
	if q.SortBy != "" {
		f.SortBy = q.SortBy
	}
	f.LocationFilter = trimMulti(q.Location)
	f.SkillFilter = splitMulti(q.Skills)
	f.CompanyFilter = trimMulti(q.Companies)
	f.EducationLevelFilter = q.EducationLevel
	f.SubjectFilter = q.Subject
	f.AvailabilityFilter = q.Availability
	f.ExperienceLevelFilter = q.ExperienceLevel
	f.RoleTypeFilter = q.RoleType
	if q.SalaryMin != nil {
		f.SalaryRange.Min = *q.SalaryMin
	}
	if q.SalaryMax != nil {
		f.SalaryRange.Max = *q.SalaryMax
	}
	f.ShowSelected = q.ShowSelected
	f.Normalize()
	return f
}

// Selection выбор, переданный вместе с запросом.
func (q *ListCandidatesQuery) Selection() *search.SelectionSet {
	return search.NewSelectionSet(splitMulti(q.Selected)...)
}

func splitMulti(values []string) []string {
	var parts []string
	for _, v := range values {
		parts = append(parts, strings.Split(v, ",")...)
	}
	return trimMulti(parts)
}

func trimMulti(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// CreateTeamRequest тело POST /api/teams.
type CreateTeamRequest struct {
	Name         string   `json:"name" binding:"max=100"`
	CandidateIDs []string `json:"candidate_ids" binding:"max=5,dive,required"`
}

// UpdateTeamRequest тело PUT /api/teams/:id; отсутствующие поля не меняются.
type UpdateTeamRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=100"`
	CandidateIDs []string `json:"candidate_ids" binding:"omitempty,max=5,dive,required"`
}

// IssueTokenRequest тело POST /api/dev/token.
type IssueTokenRequest struct {
	OwnerID string `json:"owner_id" binding:"required,max=200"`
}
