package search

import "github.com/ignatzorin/teambuilder-backend/internal/models"

// MaxSelection предельный размер выбора кандидатов.
const MaxSelection = models.MaxTeamMembers

// SelectionSet упорядоченное множество выбранных идентификаторов, не больше MaxSelection.
// Нулевое значение готово к использованию. Не потокобезопасно.
type SelectionSet struct {
	ids []string
}

// NewSelectionSet собирает выбор из идентификаторов в порядке их следования.
// Дубликаты и всё, что сверх лимита, отбрасываются.
func NewSelectionSet(ids ...string) *SelectionSet {
	s := &SelectionSet{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add добавляет id. Возвращает false, если id пустой, уже выбран или выбор заполнен.
func (s *SelectionSet) Add(id string) bool {
	if id == "" || s.Has(id) || len(s.ids) >= MaxSelection {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove убирает id из выбора.
func (s *SelectionSet) Remove(id string) bool {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle переключает членство id: снимает выбор или добавляет, если есть место.
func (s *SelectionSet) Toggle(id string) {
	if s.Remove(id) {
		return
	}
	s.Add(id)
}

// Has проверяет членство. Безопасен для nil.
func (s *SelectionSet) Has(id string) bool {
	if s == nil {
		return false
	}
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Len количество выбранных кандидатов.
func (s *SelectionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs копия выбранных идентификаторов в порядке добавления.
func (s *SelectionSet) IDs() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Clear снимает весь выбор.
func (s *SelectionSet) Clear() {
	s.ids = s.ids[:0]
}

// CandidateView кандидат с признаком выбора, который вычисляется при каждом ответе.
type CandidateView struct {
	models.Candidate
	IsSelected bool `json:"isSelected"`
}

// WithSelection проецирует кандидата на текущий выбор. Исходный кандидат не меняется.
func WithSelection(c models.Candidate, sel *SelectionSet) CandidateView {
	return CandidateView{Candidate: c, IsSelected: sel.Has(c.ID)}
}

func withSelectionAll(cands []models.Candidate, sel *SelectionSet) []CandidateView {
	out := make([]CandidateView, 0, len(cands))
	for _, c := range cands {
		out = append(out, WithSelection(c, sel))
	}
	return out
}
