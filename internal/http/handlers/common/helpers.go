package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/http/middleware"
)

var (
	// ErrOwnerNotFound владелец не найден в контексте
	ErrOwnerNotFound = errors.New("владелец не найден в контексте")

	// ErrInvalidUUID неверный формат UUID
	ErrInvalidUUID = errors.New("неверный формат UUID")
)

// CurrentOwnerID извлекает id владельца, записанный AuthMiddleware.
func CurrentOwnerID(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextOwnerIDKey)
	if !exists {
		return "", ErrOwnerNotFound
	}

	ownerID, ok := raw.(string)
	if !ok || ownerID == "" {
		return "", ErrOwnerNotFound
	}

	return ownerID, nil
}

// ParseUUIDParam parses UUID from URL parameter
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// BindAndValidate binds JSON request and returns properly formatted error
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("ошибка валидации запроса: %w", err)
	}
	return nil
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondAppError передаёт ошибку в ErrorHandler, который выберет статус.
func RespondAppError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// RespondSuccess sends a standardized success response
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, dto.SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// RespondUnauthorized sends a 401 Unauthorized response
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}
