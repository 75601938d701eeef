package handlers

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/http/middleware"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
	"github.com/ignatzorin/teambuilder-backend/internal/service"
)

var registerOnce sync.Once

// newTestRouter роутер с ErrorHandler и зарегистрированными правилами валидации.
// Непустой ownerID эмулирует AuthMiddleware.
func newTestRouter(ownerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = dto.RegisterValidators(v)
		}
	})

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	if ownerID != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextOwnerIDKey, ownerID)
			c.Next()
		})
	}
	return r
}

type mockCandidates struct {
	mock.Mock
}

func (m *mockCandidates) Page(ctx context.Context, page int, f models.FilterState, sel *search.SelectionSet) search.Page {
	args := m.Called(ctx, page, f, sel)
	return args.Get(0).(search.Page)
}

func (m *mockCandidates) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.FilterOptions), args.Error(1)
}

func (m *mockCandidates) Get(ctx context.Context, id string) (*models.Candidate, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Candidate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCandidates) InvalidateCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockTeams struct {
	mock.Mock
}

func (m *mockTeams) List(ctx context.Context, ownerID string) ([]models.Team, error) {
	args := m.Called(ctx, ownerID)
	if t := args.Get(0); t != nil {
		return t.([]models.Team), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTeams) Get(ctx context.Context, ownerID string, id uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, ownerID, id)
	return teamOrNil(args.Get(0)), args.Error(1)
}

func (m *mockTeams) Create(ctx context.Context, ownerID string, input service.CreateTeamInput) (*models.Team, error) {
	args := m.Called(ctx, ownerID, input)
	return teamOrNil(args.Get(0)), args.Error(1)
}

func (m *mockTeams) Update(ctx context.Context, ownerID string, id uuid.UUID, input service.UpdateTeamInput) (*models.Team, error) {
	args := m.Called(ctx, ownerID, id, input)
	return teamOrNil(args.Get(0)), args.Error(1)
}

func (m *mockTeams) RemoveCandidate(ctx context.Context, ownerID string, id uuid.UUID, candidateID string) (*models.Team, error) {
	args := m.Called(ctx, ownerID, id, candidateID)
	return teamOrNil(args.Get(0)), args.Error(1)
}

func (m *mockTeams) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *mockTeams) Members(ctx context.Context, ownerID string, id uuid.UUID) (*service.TeamMembers, error) {
	args := m.Called(ctx, ownerID, id)
	if tm := args.Get(0); tm != nil {
		return tm.(*service.TeamMembers), args.Error(1)
	}
	return nil, args.Error(1)
}

func teamOrNil(v interface{}) *models.Team {
	if v == nil {
		return nil
	}
	return v.(*models.Team)
}
