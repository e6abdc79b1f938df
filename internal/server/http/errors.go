package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/siteauth/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgBadBody       = "invalid request body"
	msgMissingFields = "missing fields"
	msgPasswordLong  = "password too long"
	msgConflict      = "user already exists"
	msgInvalidCreds  = "invalid credentials"
	msgInvalidToken  = "invalid token"
	msgTokenExpired  = "token expired"
	msgUnavailable   = "service unavailable"
	msgInternal      = "internal error"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps service sentinels to a status code and a generic message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorPasswordTooLong):
		return http.StatusBadRequest, msgPasswordLong
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, msgConflict
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, msgInvalidCreds
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, msgTokenExpired
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, common.ErrorUnavailable):
		return http.StatusServiceUnavailable, msgUnavailable
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (s *HTTPServer) writeError(c *gin.Context, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "unhandled error", "error", err, "path", c.FullPath())
	}
	c.AbortWithStatusJSON(code, errorResponse{Error: msg})
}
