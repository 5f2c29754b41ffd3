package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jvracle/errors"
	"jvracle/response"
	"jvracle/utils"
)

// RequestIDMiddleware tạo requestId nếu chưa có và gán vào context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		// Gán vào context để dùng trong controller hoặc service
		c.Set("requestId", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}

// RequestLogger ghi log mỗi request kèm thời gian xử lý
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.LogInfo("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}

// ErrorHandler xử lý lỗi
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Kiểm tra lỗi
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			if appErr := errors.GetAppError(err); appErr != nil {
				RespondAppError(c, appErr)
				return
			}

			response.ServerError(c)
		}
	}
}

// RespondAppError ánh xạ mã AppError sang HTTP status tương ứng
func RespondAppError(c *gin.Context, appErr *errors.AppError) {
	switch appErr.Code {
	case errors.ErrCodeNotFound, errors.ErrCodeTransactionNotFound:
		response.NotFound(c, appErr.Message)
	case errors.ErrCodeForbidden:
		response.Forbidden(c, appErr.Message)
	case errors.ErrCodeInvalidTransition, errors.ErrCodeInvalidReservationState,
		errors.ErrCodeRoomUnavailable, errors.ErrCodeFolioClosed,
		errors.ErrCodeAlreadyClosed, errors.ErrCodeNonZeroBalance,
		errors.ErrCodeOutstandingBalance:
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeValidation, errors.ErrCodeRequiredField,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidAmount,
		errors.ErrCodeInvalidCategory:
		response.ValidationError(c, appErr.Message)
	case errors.ErrCodeDBError:
		response.ServerError(c)
	default:
		response.BadRequest(c, appErr.Message)
	}
}
