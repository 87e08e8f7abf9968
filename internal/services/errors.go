package services

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/validation"
)

// Kind classifies a service failure for the transport layer
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

// Error is a failure the caller can act on. Key names a translatable message.
type Error struct {
	Kind   Kind
	Key    string
	Args   []interface{}
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Key
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, key string, args ...interface{}) *Error {
	return &Error{Kind: kind, Key: key, Args: args}
}

func badRequest(key string, args ...interface{}) *Error {
	return newError(KindBadRequest, key, args...)
}

func notFound(key string) *Error {
	return newError(KindNotFound, key)
}

func conflict(key string) *Error {
	return newError(KindConflict, key)
}

func forbidden() *Error {
	return newError(KindForbidden, i18n.ErrForbidden)
}

func unauthorized(key string) *Error {
	return newError(KindUnauthorized, key)
}

// invalid turns validator failures into a BadRequest listing every field
func invalid(err error) *Error {
	return &Error{
		Kind:   KindBadRequest,
		Key:    i18n.ErrValidation,
		Detail: strings.Join(validation.Messages(err), "; "),
	}
}

// validate runs the struct tags of input
func validate(input interface{}) error {
	if err := validation.ValidateStruct(input); err != nil {
		return invalid(err)
	}
	return nil
}

// fromRepo maps repository sentinels onto service errors
func fromRepo(err error, notFoundKey string) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	switch errors.Cause(err) {
	case repositories.ErrNotFound:
		return notFound(notFoundKey)
	case repositories.ErrDuplicateKey:
		return &Error{Kind: KindConflict, Key: i18n.ErrConflict, Err: err}
	}
	return &Error{Kind: KindInternal, Key: i18n.ErrInternal, Err: err}
}

// KindOf returns the kind of err, KindInternal for unclassified errors
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a NotFound service error
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
