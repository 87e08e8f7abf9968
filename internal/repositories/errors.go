package repositories

import (
	"github.com/pkg/errors"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/database"
)

// Common repository errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrCreateFailed = errors.New("failed to create record")
	ErrUpdateFailed = errors.New("failed to update record")
	ErrDeleteFailed = errors.New("failed to delete record")
	ErrDuplicateKey = errors.New("duplicate key violation")
)

// translate maps driver level errors onto the repository errors
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case database.IsRecordNotFoundError(err):
		return ErrNotFound
	case database.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	}
	return errors.WithStack(err)
}

// wrapWrite reports a failed write, keeping duplicate keys distinguishable
func wrapWrite(err error, op error) error {
	if err == nil {
		return nil
	}
	if database.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return errors.Wrap(op, err.Error())
}
