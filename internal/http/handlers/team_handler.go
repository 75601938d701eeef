package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/http/handlers/common"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/service"
)

// TeamManager операции над командами владельца.
type TeamManager interface {
	List(ctx context.Context, ownerID string) ([]models.Team, error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*models.Team, error)
	Create(ctx context.Context, ownerID string, input service.CreateTeamInput) (*models.Team, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, input service.UpdateTeamInput) (*models.Team, error)
	RemoveCandidate(ctx context.Context, ownerID string, id uuid.UUID, candidateID string) (*models.Team, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	Members(ctx context.Context, ownerID string, id uuid.UUID) (*service.TeamMembers, error)
}

// TeamHandler обслуживает сохранённые команды.
type TeamHandler struct {
	teams    TeamManager
	maxTeams int
}

// NewTeamHandler создаёт хэндлер команд.
func NewTeamHandler(teams TeamManager, maxTeams int) *TeamHandler {
	return &TeamHandler{teams: teams, maxTeams: maxTeams}
}

// List обрабатывает GET /api/teams.
func (h *TeamHandler) List(c *gin.Context) {
	ownerID, err := common.CurrentOwnerID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	teams, err := h.teams.List(c.Request.Context(), ownerID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TeamListResponse{Data: teams, Count: len(teams), MaxTeams: h.maxTeams})
}

// Create обрабатывает POST /api/teams.
func (h *TeamHandler) Create(c *gin.Context) {
	ownerID, err := common.CurrentOwnerID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateTeamRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	team, err := h.teams.Create(c.Request.Context(), ownerID, service.CreateTeamInput{
		Name:         req.Name,
		CandidateIDs: req.CandidateIDs,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// Get обрабатывает GET /api/teams/:id.
func (h *TeamHandler) Get(c *gin.Context) {
	ownerID, teamID, ok := h.ownerAndTeam(c)
	if !ok {
		return
	}

	team, err := h.teams.Get(c.Request.Context(), ownerID, teamID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// Update обрабатывает PUT /api/teams/:id.
func (h *TeamHandler) Update(c *gin.Context) {
	ownerID, teamID, ok := h.ownerAndTeam(c)
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	team, err := h.teams.Update(c.Request.Context(), ownerID, teamID, service.UpdateTeamInput{
		Name:         req.Name,
		CandidateIDs: req.CandidateIDs,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// Delete обрабатывает DELETE /api/teams/:id.
func (h *TeamHandler) Delete(c *gin.Context) {
	ownerID, teamID, ok := h.ownerAndTeam(c)
	if !ok {
		return
	}

	if err := h.teams.Delete(c.Request.Context(), ownerID, teamID); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Members обрабатывает GET /api/teams/:id/members.
func (h *TeamHandler) Members(c *gin.Context) {
	ownerID, teamID, ok := h.ownerAndTeam(c)
	if !ok {
		return
	}

	members, err := h.teams.Members(c.Request.Context(), ownerID, teamID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// RemoveCandidate обрабатывает DELETE /api/teams/:id/candidates/:candidateId.
func (h *TeamHandler) RemoveCandidate(c *gin.Context) {
	ownerID, teamID, ok := h.ownerAndTeam(c)
	if !ok {
		return
	}

	candidateID := c.Param("candidateId")
	if candidateID == "" {
		common.RespondBadRequest(c, "candidateId обязателен")
		return
	}

	team, err := h.teams.RemoveCandidate(c.Request.Context(), ownerID, teamID, candidateID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *TeamHandler) ownerAndTeam(c *gin.Context) (string, uuid.UUID, bool) {
	ownerID, err := common.CurrentOwnerID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return "", uuid.Nil, false
	}

	teamID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return "", uuid.Nil, false
	}
	return ownerID, teamID, true
}
