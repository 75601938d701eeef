package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/pkg/apperror"
	"github.com/ignatzorin/teambuilder-backend/internal/repository"
	"github.com/ignatzorin/teambuilder-backend/internal/validation"
)

// События об изменении команд для живых сессий владельца.
const (
	EventTeamSaved   = "team_saved"
	EventTeamUpdated = "team_updated"
	EventTeamDeleted = "team_deleted"
)

// TeamStore хранилище команд.
type TeamStore interface {
	Create(ctx context.Context, team *models.Team) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Team, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	RemoveCandidate(ctx context.Context, ownerID string, id uuid.UUID, candidateID string) (*models.Team, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// MemberResolver находит профили участников команды.
type MemberResolver interface {
	ByIDs(ctx context.Context, ids []string) ([]models.Candidate, error)
}

// TeamNotifier доставляет события всем сессиям владельца.
type TeamNotifier interface {
	NotifyOwner(ownerID, event string, payload interface{})
}

// CreateTeamInput данные для сохранения выбранных кандидатов командой.
type CreateTeamInput struct {
	Name         string
	CandidateIDs []string
}

// UpdateTeamInput nil поля не изменяются.
type UpdateTeamInput struct {
	Name         *string
	CandidateIDs []string
}

// TeamMembers команда с разрешёнными профилями.
type TeamMembers struct {
	Team               *models.Team       `json:"team"`
	Members            []models.Candidate `json:"members"`
	MembersUnavailable bool               `json:"members_unavailable"`
}

// TeamService управляет командами владельца.
type TeamService struct {
	teams    TeamStore
	members  MemberResolver
	notifier TeamNotifier
	maxTeams int
	log      logrus.FieldLogger
}

// NewTeamService создаёт сервис команд. notifier может быть nil.
func NewTeamService(teams TeamStore, members MemberResolver, notifier TeamNotifier, maxTeams int) *TeamService {
	if maxTeams <= 0 {
		maxTeams = models.MaxTeamsPerOwner
	}
	return &TeamService{
		teams:    teams,
		members:  members,
		notifier: notifier,
		maxTeams: maxTeams,
		log:      logger.Get(),
	}
}

// List возвращает команды владельца, новые первыми.
func (s *TeamService) List(ctx context.Context, ownerID string) ([]models.Team, error) {
	teams, err := s.teams.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить команды")
	}
	return teams, nil
}

// Get возвращает команду владельца.
func (s *TeamService) Get(ctx context.Context, ownerID string, id uuid.UUID) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapTeamError(err, "не удалось загрузить команду")
	}
	return team, nil
}

// Create сохраняет команду. Лимит проверяется до вставки; одновременные запросы
// одного владельца могут его превысить.
func (s *TeamService) Create(ctx context.Context, ownerID string, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateTeam(name, input.CandidateIDs); err != nil {
		return nil, err
	}

	count, err := s.teams.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить лимит команд")
	}
	if count >= s.maxTeams {
		return nil, apperror.ErrTeamLimitReached
	}

	if name == "" {
		name = models.DefaultTeamName
	}
	team := &models.Team{
		Name:         name,
		OwnerID:      ownerID,
		CandidateIDs: pq.StringArray(append([]string{}, input.CandidateIDs...)),
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить команду")
	}

	s.log.WithFields(logrus.Fields{
		"team_id": team.ID.String(),
		"owner":   ownerID,
		"members": len(team.CandidateIDs),
	}).Info("teams: команда сохранена")
	s.notify(ownerID, EventTeamSaved, team)
	return team, nil
}

// Update меняет имя и/или состав команды.
func (s *TeamService) Update(ctx context.Context, ownerID string, id uuid.UUID, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapTeamError(err, "не удалось загрузить команду")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			name = models.DefaultTeamName
		}
		team.Name = name
	}
	if input.CandidateIDs != nil {
		team.CandidateIDs = pq.StringArray(append([]string{}, input.CandidateIDs...))
	}
	if err := validateTeam(team.Name, team.CandidateIDs); err != nil {
		return nil, err
	}

	if err := s.teams.Update(ctx, team); err != nil {
		return nil, mapTeamError(err, "не удалось обновить команду")
	}
	s.notify(ownerID, EventTeamUpdated, team)
	return team, nil
}

// RemoveCandidate исключает кандидата из команды.
func (s *TeamService) RemoveCandidate(ctx context.Context, ownerID string, id uuid.UUID, candidateID string) (*models.Team, error) {
	team, err := s.teams.RemoveCandidate(ctx, ownerID, id, candidateID)
	if err != nil {
		return nil, mapTeamError(err, "не удалось удалить кандидата из команды")
	}
	s.notify(ownerID, EventTeamUpdated, team)
	return team, nil
}

// Delete удаляет команду.
func (s *TeamService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := s.teams.Delete(ctx, ownerID, id); err != nil {
		return mapTeamError(err, "не удалось удалить команду")
	}
	s.notify(ownerID, EventTeamDeleted, map[string]string{"id": id.String()})
	return nil
}

// Members разрешает участников команды. Если в команде есть id, но ни один
// профиль не найден, возвращается признак MembersUnavailable вместо ошибки.
func (s *TeamService) Members(ctx context.Context, ownerID string, id uuid.UUID) (*TeamMembers, error) {
	team, err := s.teams.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapTeamError(err, "не удалось загрузить команду")
	}

	members, err := s.members.ByIDs(ctx, team.CandidateIDs)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"team_id": id.String(),
			"error":   err.Error(),
		}).Error("teams: не удалось загрузить участников")
		members = []models.Candidate{}
	}

	return &TeamMembers{
		Team:               team,
		Members:            members,
		MembersUnavailable: len(team.CandidateIDs) > 0 && len(members) == 0,
	}, nil
}

func (s *TeamService) notify(ownerID, event string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.NotifyOwner(ownerID, event, payload)
	}
}

func validateTeam(name string, ids []string) error {
	if err := validation.ValidateTeamName(name); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if len(ids) > models.MaxTeamMembers {
		return apperror.ErrTeamFull
	}
	if err := validation.ValidateCandidateIDs(ids); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return nil
}

func mapTeamError(err error, message string) error {
	if errors.Is(err, repository.ErrTeamNotFound) {
		return apperror.ErrTeamNotFound
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}
