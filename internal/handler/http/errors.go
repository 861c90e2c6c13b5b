package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hongik-programming-study/backend/internal/service"
)

// HandleServiceError 是业务错误到 HTTP 状态码的唯一翻译点。
// msg 原样使用错误自带的固定描述。
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmailDuplicated),
		errors.Is(err, service.ErrLoginFailed):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExpiredToken),
		errors.Is(err, service.ErrMalformedToken),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenMismatch):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrPostMismatch):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		// Log the internal error for debugging
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}
