package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Ограничения на состав команд.
const (
	MaxTeamMembers    = 5
	MaxTeamsPerOwner  = 3
	DefaultTeamName   = "My Team"
	MaxTeamNameLength = 100
)

// Team сохранённая команда кандидатов.
type Team struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	OwnerID      string         `db:"owner_id" json:"owner_id"`
	CandidateIDs pq.StringArray `db:"candidate_ids" json:"candidate_ids"`
	SavedAt      time.Time      `db:"saved_at" json:"saved_at"`
}

// HasCandidate проверяет, входит ли кандидат в команду.
func (t *Team) HasCandidate(candidateID string) bool {
	for _, id := range t.CandidateIDs {
		if id == candidateID {
			return true
		}
	}
	return false
}
