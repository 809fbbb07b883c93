package middleware

import (
	"errors"
	"net/http"

	"go-mockinterview-backend/internal/delivery/http/response"
	"go-mockinterview-backend/pkg/apperror"
	"go-mockinterview-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Unknown errors are logged server-side and never
				// exposed to clients.
				logger.Log.Error("internal server error",
					"error", err.Error(),
					"path", c.FullPath(),
					"request_id", c.GetString("RequestID"),
				)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
