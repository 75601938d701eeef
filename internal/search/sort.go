package search

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

// Sort упорядочивает кандидатов на месте по ключу sortBy. Сортировка стабильная:
// равные ключи сохраняют входной порядок. Неизвестный ключ порядок не меняет.
func Sort(cands []models.Candidate, sortBy string, locale language.Tag) {
	switch sortBy {
	case models.SortByName:
		// collate.Collator не потокобезопасен, поэтому создаётся на каждый вызов.
		col := collate.New(locale)
		sort.SliceStable(cands, func(i, j int) bool {
			return col.CompareString(cands[i].Name, cands[j].Name) < 0
		})
	case models.SortBySubmitted:
		keys := make(map[string]time.Time, len(cands))
		for i := range cands {
			keys[cands[i].ID] = submittedKey(cands[i].SubmittedAt)
		}
		sort.SliceStable(cands, func(i, j int) bool {
			return keys[cands[i].ID].After(keys[cands[j].ID])
		})
	case models.SortBySalary:
		sort.SliceStable(cands, func(i, j int) bool {
			return salaryKey(&cands[i]) > salaryKey(&cands[j])
		})
	case models.SortByExperience:
		sort.SliceStable(cands, func(i, j int) bool {
			return len(cands[i].WorkExperiences) > len(cands[j].WorkExperiences)
		})
	}
}

// salaryKey зарплата для сортировки; отсутствующая или нечитаемая считается нулём.
func salaryKey(c *models.Candidate) int {
	raw, ok := c.FullTimeSalary()
	if !ok {
		return 0
	}
	v, ok := ParseSalary(raw)
	if !ok {
		return 0
	}
	return v
}

// submittedKey время подачи; нечитаемое значение уходит в конец.
func submittedKey(raw string) time.Time {
	t, _ := models.ParseSubmittedAt(raw)
	return t
}
