package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Сообщения AppError отдаются клиенту, остальные ошибки маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		resp := dto.ErrorResponse{Error: "внутренняя ошибка сервера", Code: string(apperror.ErrCodeInternal)}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status = appErr.HTTPStatus
			resp.Code = string(appErr.Code)
			if status < http.StatusInternalServerError {
				resp.Error = appErr.Message
			}
		}

		entry := logger.Get().WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": status,
		})
		if status >= http.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Debug("Request rejected")
		}

		c.JSON(status, resp)
	}
}
