package search

import (
	"strconv"
	"strings"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

// predicate проверка одного фильтра для кандидата.
type predicate func(c *models.Candidate) bool

// isSet сообщает, задан ли одиночный фильтр.
func isSet(v string) bool {
	return v != "" && v != models.FilterAll
}

// HasActiveFilters true, если хотя бы один фильтр отличается от значения по умолчанию.
// showSelected сюда не входит.
func HasActiveFilters(f models.FilterState) bool {
	if f.SearchTerm != "" {
		return true
	}
	if len(f.LocationFilter) > 0 || len(f.SkillFilter) > 0 || len(f.CompanyFilter) > 0 {
		return true
	}
	for _, v := range []string{
		f.EducationLevelFilter,
		f.SubjectFilter,
		f.AvailabilityFilter,
		f.ExperienceLevelFilter,
		f.RoleTypeFilter,
	} {
		if isSet(v) {
			return true
		}
	}
	if !f.SalaryRange.IsDefault() {
		return true
	}
	return false
}

// Filter возвращает кандидатов, прошедших все фильтры, в исходном порядке.
func Filter(cands []models.Candidate, f models.FilterState, sel *SelectionSet) []models.Candidate {
	f.Normalize()
	preds := compile(f, sel)

	out := make([]models.Candidate, 0, len(cands))
	for i := range cands {
		if matchAll(&cands[i], preds) {
			out = append(out, cands[i])
		}
	}
	return out
}

func matchAll(c *models.Candidate, preds []predicate) bool {
	for _, p := range preds {
		if !p(c) {
			return false
		}
	}
	return true
}

// compile собирает предикаты в фиксированном порядке. Пустые фильтры не попадают в список,
// кроме зарплаты: она проверяется всегда.
func compile(f models.FilterState, sel *SelectionSet) []predicate {
	var preds []predicate

	if f.SearchTerm != "" {
		preds = append(preds, matchSearch(strings.ToLower(f.SearchTerm)))
	}
	if len(f.LocationFilter) > 0 {
		set := toSet(f.LocationFilter)
		preds = append(preds, func(c *models.Candidate) bool {
			_, ok := set[c.Location]
			return c.Location != "" && ok
		})
	}
	if len(f.SkillFilter) > 0 {
		set := toSet(f.SkillFilter)
		preds = append(preds, func(c *models.Candidate) bool {
			return anyIn(c.Skills, set)
		})
	}
	if len(f.CompanyFilter) > 0 {
		set := toSet(f.CompanyFilter)
		preds = append(preds, func(c *models.Candidate) bool {
			for _, exp := range c.WorkExperiences {
				if _, ok := set[exp.Company]; ok {
					return true
				}
			}
			return false
		})
	}
	if isSet(f.EducationLevelFilter) {
		level := f.EducationLevelFilter
		preds = append(preds, func(c *models.Candidate) bool {
			return c.Education.HighestLevel == level
		})
	}
	if isSet(f.SubjectFilter) {
		subject := f.SubjectFilter
		preds = append(preds, func(c *models.Candidate) bool {
			for _, d := range c.Education.Degrees {
				if d.Subject == subject {
					return true
				}
			}
			return false
		})
	}
	if isSet(f.AvailabilityFilter) {
		availability := f.AvailabilityFilter
		preds = append(preds, func(c *models.Candidate) bool {
			for _, a := range c.WorkAvailability {
				if a == availability {
					return true
				}
			}
			return false
		})
	}
	if isSet(f.RoleTypeFilter) {
		role := strings.ToLower(f.RoleTypeFilter)
		preds = append(preds, func(c *models.Candidate) bool {
			for _, exp := range c.WorkExperiences {
				if strings.Contains(strings.ToLower(exp.RoleName), role) {
					return true
				}
			}
			return false
		})
	}
	if isSet(f.ExperienceLevelFilter) {
		level := f.ExperienceLevelFilter
		if _, known := models.ValidExperienceLevels[level]; known {
			preds = append(preds, func(c *models.Candidate) bool {
				return ExperienceBucket(len(c.WorkExperiences)) == level
			})
		}
	}

	salary := f.SalaryRange
	preds = append(preds, func(c *models.Candidate) bool {
		raw, ok := c.FullTimeSalary()
		if !ok {
			// без ожидания по полной занятости кандидат не участвует в фильтре
			return true
		}
		v, ok := ParseSalary(raw)
		if !ok {
			return true
		}
		return v >= salary.Min && v <= salary.Max
	})

	if f.ShowSelected {
		preds = append(preds, func(c *models.Candidate) bool {
			return sel.Has(c.ID)
		})
	}

	return preds
}

// matchSearch регистронезависимый поиск подстроки по имени, email, навыкам,
// компаниям, должностям и специальностям.
func matchSearch(term string) predicate {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), term)
	}
	return func(c *models.Candidate) bool {
		if contains(c.Name) || contains(c.Email) {
			return true
		}
		for _, s := range c.Skills {
			if contains(s) {
				return true
			}
		}
		for _, exp := range c.WorkExperiences {
			if contains(exp.Company) || contains(exp.RoleName) {
				return true
			}
		}
		for _, d := range c.Education.Degrees {
			if d.Subject != "" && contains(d.Subject) {
				return true
			}
		}
		return false
	}
}

// ExperienceBucket уровень опыта по количеству мест работы.
func ExperienceBucket(count int) string {
	switch {
	case count <= 2:
		return models.ExperienceLevelEntry
	case count <= 5:
		return models.ExperienceLevelMid
	default:
		return models.ExperienceLevelSenior
	}
}

// ParseSalary разбирает строку вида "$165,000" в целое число.
// Как и parseInt, читает ведущие цифры и игнорирует хвост ("120000.50" -> 120000).
func ParseSalary(raw string) (int, bool) {
	s := strings.NewReplacer("$", "", ",", "").Replace(raw)
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func anyIn(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
