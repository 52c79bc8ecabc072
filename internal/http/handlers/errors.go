package handlers

import (
	"errors"
	"net/http"

	"ourbus/internal/domain"
	"ourbus/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondErrorCoded(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"message":    message,
		"code":       code,
		"details":    details,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses: 400 for client
// input, 404 for unknown resources, 409 for availability/state conflicts,
// 503 when the store is unreachable or corrupt.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsQuota(err):
		var quota domain.QuotaError
		errors.As(err, &quota)
		respondErrorCoded(c, http.StatusBadRequest, "quota_exceeded", err.Error(), gin.H{"remaining": quota.Remaining})
	case domain.IsValidation(err):
		respondErrorCoded(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondErrorCoded(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondErrorCoded(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsStorage(err):
		respondErrorCoded(c, http.StatusServiceUnavailable, "storage_error", err.Error(), nil)
	default:
		respondErrorCoded(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
