package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/teambuilder-backend/internal/pkg/apperror"
)

// UUIDValidator отклоняет запрос, если параметр пути не является UUID.
// Пример: teams.GET("/:id", UUIDValidator("id"), h.Team.Get)
func UUIDValidator(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(param)
		if raw == "" {
			abortWith(c, apperror.New(apperror.ErrCodeBadRequest, "параметр "+param+" обязателен"))
			return
		}
		if _, err := uuid.Parse(raw); err != nil {
			abortWith(c, apperror.New(apperror.ErrCodeBadRequest, "параметр "+param+" должен быть UUID"))
			return
		}
		c.Next()
	}
}
