package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/http/handlers/common"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
)

// TeamLister список команд владельца.
type TeamLister interface {
	List(ctx context.Context, ownerID string) ([]models.Team, error)
}

// DashboardHandler отдаёт стартовые данные экрана одним запросом.
type DashboardHandler struct {
	candidates CandidateQueries
	teams      TeamLister
}

// NewDashboardHandler creates a new instance.
func NewDashboardHandler(candidates CandidateQueries, teams TeamLister) *DashboardHandler {
	return &DashboardHandler{candidates: candidates, teams: teams}
}

// GetDashboardData обрабатывает GET /api/dashboard: первая страница без фильтров,
// варианты фильтров и команды владельца загружаются параллельно.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	ownerID, err := common.CurrentOwnerID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var (
		resp    dto.DashboardResponse
		filters = models.DefaultFilterState()
	)

	g, gCtx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		page := h.candidates.Page(gCtx, 1, filters, search.NewSelectionSet())
		resp.Candidates = dto.NewCandidateListResponse(page, filters)
		return nil
	})
	g.Go(func() error {
		opts, err := h.candidates.FilterOptions(gCtx)
		if err != nil {
			return err
		}
		resp.FilterOptions = opts
		return nil
	})
	g.Go(func() error {
		teams, err := h.teams.List(gCtx, ownerID)
		if err != nil {
			return err
		}
		resp.Teams = teams
		return nil
	})

	if err := g.Wait(); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
