package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

var ErrTeamNotFound = errors.New("team not found")

// TeamRepository хранилище команд. Все операции ограничены владельцем.
type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create сохраняет команду и заполняет id и saved_at.
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (owner_id, name, candidate_ids)
		VALUES ($1, $2, $3)
		RETURNING id, saved_at
	`
	if team.CandidateIDs == nil {
		team.CandidateIDs = pq.StringArray{}
	}
	if err := r.db.QueryRowxContext(ctx, query, team.OwnerID, team.Name, team.CandidateIDs).
		Scan(&team.ID, &team.SavedAt); err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// ListByOwner возвращает команды владельца, новые первыми.
func (r *TeamRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Team, error) {
	teams := []models.Team{}
	query := `SELECT id, owner_id, name, candidate_ids, saved_at FROM teams WHERE owner_id = $1 ORDER BY saved_at DESC`
	if err := r.db.SelectContext(ctx, &teams, query, ownerID); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// CountByOwner количество команд владельца.
func (r *TeamRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM teams WHERE owner_id = $1`, ownerID); err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	return n, nil
}

// GetByID возвращает команду владельца; чужая команда не отличается от отсутствующей.
func (r *TeamRepository) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	query := `SELECT id, owner_id, name, candidate_ids, saved_at FROM teams WHERE id = $1 AND owner_id = $2`
	if err := r.db.GetContext(ctx, &team, query, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &team, nil
}

// Update перезаписывает имя и состав команды.
func (r *TeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET name = $1, candidate_ids = $2
		WHERE id = $3 AND owner_id = $4
		RETURNING saved_at
	`
	if err := r.db.QueryRowxContext(ctx, query, team.Name, team.CandidateIDs, team.ID, team.OwnerID).
		Scan(&team.SavedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

// RemoveCandidate убирает кандидата из команды и возвращает обновлённую команду.
func (r *TeamRepository) RemoveCandidate(ctx context.Context, ownerID string, id uuid.UUID, candidateID string) (*models.Team, error) {
	var team models.Team
	query := `
		UPDATE teams SET candidate_ids = array_remove(candidate_ids, $1)
		WHERE id = $2 AND owner_id = $3
		RETURNING id, owner_id, name, candidate_ids, saved_at
	`
	if err := r.db.GetContext(ctx, &team, query, candidateID, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("remove team candidate: %w", err)
	}
	return &team, nil
}

// Delete удаляет команду владельца.
func (r *TeamRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if n == 0 {
		return ErrTeamNotFound
	}
	return nil
}
