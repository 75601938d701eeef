package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/teambuilder-backend/internal/config"
	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/http/handlers"
	"github.com/ignatzorin/teambuilder-backend/internal/http/middleware"
)

// Handlers набор хэндлеров API. Seed и Token регистрируются только вне production.
type Handlers struct {
	Health    *handlers.HealthHandler
	Candidate *handlers.CandidateHandler
	Team      *handlers.TeamHandler
	Dashboard *handlers.DashboardHandler
	WS        *handlers.WSHandler
	Seed      *handlers.SeedHandler
	Token     *handlers.TokenHandler
}

// SetupRouter собирает gin engine с маршрутами API.
func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.TokenParser) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("router: регистрация валидаторов: %w", err)
		}
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))

	if !cfg.IsProduction() {
		if h.Seed != nil {
			api.POST("/seed", h.Seed.Seed)
		}
		if h.Token != nil {
			api.POST("/dev/token", h.Token.Issue)
		}
	}

	// Публичные маршруты
	api.GET("/candidates", h.Candidate.List)
	api.GET("/candidates/filters", h.Candidate.Filters)
	api.GET("/candidates/:id", h.Candidate.Get)
	api.GET("/ws", h.WS.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.GET("/dashboard", h.Dashboard.GetDashboardData)

		protected.GET("/teams", h.Team.List)
		protected.POST("/teams", h.Team.Create)
		protected.GET("/teams/:id", middleware.UUIDValidator("id"), h.Team.Get)
		protected.PUT("/teams/:id", middleware.UUIDValidator("id"), h.Team.Update)
		protected.DELETE("/teams/:id", middleware.UUIDValidator("id"), h.Team.Delete)
		protected.GET("/teams/:id/members", middleware.UUIDValidator("id"), h.Team.Members)
		protected.DELETE("/teams/:id/candidates/:candidateId", middleware.UUIDValidator("id"), h.Team.RemoveCandidate)

		protected.POST("/admin/cache/invalidate", h.Candidate.InvalidateCache)
	}

	return r, nil
}
