package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

// Константы валидации
const (
	MaxTeamNameLength    = models.MaxTeamNameLength
	MaxTeamMembers       = models.MaxTeamMembers
	MaxCandidateIDLength = 64
	MaxSearchTermLength  = 200
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateTeamName проверяет имя команды. Пустое имя допустимо: подставится имя по умолчанию.
func ValidateTeamName(name string) error {
	name = strings.TrimSpace(name)
	if err := ValidateLength("название команды", name, 0, MaxTeamNameLength); err != nil {
		return err
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("название команды содержит управляющие символы")
		}
	}
	return nil
}

// ValidateCandidateIDs проверяет состав команды: не больше пяти непустых уникальных id.
func ValidateCandidateIDs(ids []string) error {
	if len(ids) > MaxTeamMembers {
		return fmt.Errorf("в команде не может быть больше %d кандидатов", MaxTeamMembers)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("id кандидата не может быть пустым")
		}
		if len(id) > MaxCandidateIDLength {
			return fmt.Errorf("id кандидата должен быть не более %d символов", MaxCandidateIDLength)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("кандидат %s указан дважды", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// SanitizeSearchTerm обрезает пробелы и ограничивает длину поисковой строки.
func SanitizeSearchTerm(term string) string {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) <= MaxSearchTermLength {
		return term
	}
	return string([]rune(term)[:MaxSearchTermLength])
}
