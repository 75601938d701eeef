package search

import (
	"sort"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

// DiscoverOptions собирает отсортированные уникальные значения для фильтров
// по всему набору кандидатов, независимо от активных фильтров.
func DiscoverOptions(cands []models.Candidate) models.FilterOptions {
	skills := newStringSet()
	locations := newStringSet()
	companies := newStringSet()
	levels := newStringSet()
	subjects := newStringSet()
	availability := newStringSet()

	for i := range cands {
		c := &cands[i]
		skills.add(c.Skills...)
		locations.add(c.Location)
		for _, exp := range c.WorkExperiences {
			companies.add(exp.Company)
		}
		levels.add(c.Education.HighestLevel)
		for _, d := range c.Education.Degrees {
			subjects.add(d.Subject)
		}
		availability.add(c.WorkAvailability...)
	}

	return models.FilterOptions{
		Skills:          skills.sorted(),
		Locations:       locations.sorted(),
		Companies:       companies.sorted(),
		EducationLevels: levels.sorted(),
		Subjects:        subjects.sorted(),
		Availability:    availability.sorted(),
	}
}

type stringSet map[string]struct{}

func newStringSet() stringSet {
	return make(stringSet)
}

func (s stringSet) add(values ...string) {
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
