package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/pkg/apperror"
)

// ContextOwnerIDKey ключ id владельца в gin.Context.
const ContextOwnerIDKey = "ownerID"

// TokenParser проверяет access токен и возвращает id владельца.
type TokenParser interface {
	ParseAccess(token string) (string, error)
}

// AuthMiddleware проверяет JWT access токен.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		ownerID, err := tokens.ParseAccess(strings.TrimPrefix(auth, "Bearer "))
		if err != nil || ownerID == "" {
			abortWith(c, apperror.ErrInvalidToken)
			return
		}

		c.Set(ContextOwnerIDKey, ownerID)
		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, dto.ErrorResponse{Error: err.Message, Code: string(err.Code)})
}
