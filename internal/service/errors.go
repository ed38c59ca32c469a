package service

import (
	"errors"
	"fmt"

	"github.com/eventboard/backend/internal/db"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrMisconfigured     = errors.New("auth config invalid")
)

// repoError lifts storage sentinels into service sentinels. kind and id only
// feed the error text.
func repoError(err error, kind, id string) error {
	switch {
	case err == nil:
		return nil
	case db.IsNoRows(err):
		return fmt.Errorf("%w: %s with id %s", ErrNotFound, kind, id)
	case db.IsDuplicate(err):
		return fmt.Errorf("%w: %s already exists", ErrConflict, kind)
	default:
		return err
	}
}
