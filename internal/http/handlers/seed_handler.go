package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/http/handlers/common"
)

// Seeder загружает демонстрационные профили.
type Seeder interface {
	SeedDefault(ctx context.Context) (int, error)
}

// SeedHandler обрабатывает загрузку демонстрационных кандидатов.
type SeedHandler struct {
	seeder Seeder
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seeder Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Seed импортирует встроенный набор кандидатов.
// POST /api/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	n, err := h.seeder.SeedDefault(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SeedResponse{Imported: n})
}
