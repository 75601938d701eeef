package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTeamName(t *testing.T) {
	assert.NoError(t, ValidateTeamName(""))
	assert.NoError(t, ValidateTeamName("Платформа 2025"))
	assert.Error(t, ValidateTeamName(strings.Repeat("а", MaxTeamNameLength+1)))
	assert.Error(t, ValidateTeamName("bad\x00name"))
}

func TestValidateCandidateIDs(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantErr bool
	}{
		{"empty", nil, false},
		{"five", []string{"1", "2", "3", "4", "5"}, false},
		{"six", []string{"1", "2", "3", "4", "5", "6"}, true},
		{"blank", []string{"1", " "}, true},
		{"duplicate", []string{"1", "1"}, true},
		{"too long", []string{strings.Repeat("x", MaxCandidateIDLength+1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCandidateIDs(tt.ids)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeSearchTerm(t *testing.T) {
	assert.Equal(t, "go", SanitizeSearchTerm("  go "))
	assert.Len(t, []rune(SanitizeSearchTerm(strings.Repeat("я", 300))), MaxSearchTermLength)
}
