package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

// Error represents an API error. Message is a translatable message key.
type Error struct {
	Message    string
	StatusCode int
	Code       string
	Detail     string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// Common API errors
var (
	ErrInvalidRequest = &Error{Message: i18n.ErrBadRequest, StatusCode: http.StatusBadRequest, Code: "INVALID_REQUEST"}
	ErrNotFound       = &Error{Message: i18n.ErrNotFound, StatusCode: http.StatusNotFound, Code: "NOT_FOUND"}
	ErrInternalServer = &Error{Message: i18n.ErrInternal, StatusCode: http.StatusInternalServerError, Code: "INTERNAL_ERROR"}
	ErrUnauthorized   = &Error{Message: i18n.ErrUnauthorized, StatusCode: http.StatusUnauthorized, Code: "UNAUTHORIZED"}
	ErrForbidden      = &Error{Message: i18n.ErrForbidden, StatusCode: http.StatusForbidden, Code: "FORBIDDEN"}
)

// invalidRequest wraps a binding failure
func invalidRequest(err error) *Error {
	return &Error{
		Message:    i18n.ErrBadRequest,
		StatusCode: http.StatusBadRequest,
		Code:       "INVALID_REQUEST",
		Detail:     err.Error(),
	}
}

var kindStatus = map[services.Kind]*Error{
	services.KindBadRequest:   {StatusCode: http.StatusBadRequest, Code: "BAD_REQUEST"},
	services.KindNotFound:     {StatusCode: http.StatusNotFound, Code: "NOT_FOUND"},
	services.KindConflict:     {StatusCode: http.StatusConflict, Code: "CONFLICT"},
	services.KindUnauthorized: {StatusCode: http.StatusUnauthorized, Code: "UNAUTHORIZED"},
	services.KindForbidden:    {StatusCode: http.StatusForbidden, Code: "FORBIDDEN"},
	services.KindInternal:     {StatusCode: http.StatusInternalServerError, Code: "INTERNAL_ERROR"},
}

// WriteError writes the failure envelope for err in the request language
func WriteError(c *gin.Context, tr i18n.Translator, err error) {
	lang := language(c)

	var svcErr *services.Error
	var apiErr *Error
	switch {
	case errors.As(err, &svcErr) && svcErr.Kind != services.KindInternal:
		mapped := kindStatus[svcErr.Kind]
		msg := tr.T(lang, svcErr.Key, svcErr.Args...)
		if svcErr.Detail != "" {
			msg += ": " + svcErr.Detail
		}
		abort(c, mapped.StatusCode, mapped.Code, msg)
	case errors.As(err, &apiErr):
		msg := tr.T(lang, apiErr.Message)
		if apiErr.Detail != "" {
			msg += ": " + apiErr.Detail
		}
		abort(c, apiErr.StatusCode, apiErr.Code, msg)
	default:
		log.Error().Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("path", c.FullPath()).
			Msg("Unhandled error")
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, ErrInternalServer.Code, tr.T(lang, i18n.ErrInternal))
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{
		Status:    statusError,
		Code:      status,
		ErrorCode: code,
		Message:   message,
	})
}
