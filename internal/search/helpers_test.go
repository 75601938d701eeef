package search

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

var langEnglish = language.English

func candidate(id, name string, mutators ...func(*models.Candidate)) models.Candidate {
	c := models.Candidate{
		ID:                      id,
		Name:                    name,
		Email:                   id + "@example.com",
		SubmittedAt:             "2025-01-01T00:00:00.000Z",
		WorkAvailability:        []string{"full-time"},
		AnnualSalaryExpectation: map[string]string{"full-time": "$100,000"},
	}
	for _, m := range mutators {
		m(&c)
	}
	return c
}

func withSalary(v string) func(*models.Candidate) {
	return func(c *models.Candidate) {
		if v == "" {
			c.AnnualSalaryExpectation = map[string]string{}
			return
		}
		c.AnnualSalaryExpectation = map[string]string{"full-time": v}
	}
}

func withExperiences(n int) func(*models.Candidate) {
	return func(c *models.Candidate) {
		c.WorkExperiences = make([]models.WorkExperience, 0, n)
		for i := 0; i < n; i++ {
			c.WorkExperiences = append(c.WorkExperiences, models.WorkExperience{
				Company:  fmt.Sprintf("Company %d", i),
				RoleName: "Engineer",
			})
		}
	}
}

func ids(views []CandidateView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func candidateIDs(cands []models.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.ID)
	}
	return out
}

// memStore хранилище в памяти с той же сортировкой по имени, что и у движка.
type memStore struct {
	rows    []models.Candidate
	err     error
	queries []models.ProfileQuery
}

func (s *memStore) QueryProfiles(_ context.Context, q models.ProfileQuery) ([]models.Candidate, int, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, 0, s.err
	}

	rows := make([]models.Candidate, len(s.rows))
	copy(rows, s.rows)

	for _, o := range q.Order {
		switch o.Field {
		case "name":
			col := collate.New(language.English)
			sort.SliceStable(rows, func(i, j int) bool {
				return col.CompareString(rows[i].Name, rows[j].Name) < 0
			})
		case "submitted_at":
			sort.SliceStable(rows, func(i, j int) bool {
				return rows[i].SubmittedAt > rows[j].SubmittedAt
			})
		}
	}

	total := len(rows)
	if q.Limit > 0 {
		rows = Paginate(rows, q.Offset/q.Limit+1, q.Limit)
	}
	return rows, total, nil
}
