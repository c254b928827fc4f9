package httperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindBusiness Kind = iota
	KindValidation
	KindNotFound
	KindSlotUnavailable
	KindConflict
	KindPersistence
)

type BusinessError struct {
	Code string
	Kind Kind
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func Validation(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func NotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func SlotUnavailable(code string) error {
	return BusinessError{Code: code, Kind: KindSlotUnavailable}
}

func Conflict(code string) error {
	return BusinessError{Code: code, Kind: KindConflict}
}

// Persistence wraps a store failure. Nil stays nil.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return BusinessError{Code: "persistence_error", Kind: KindPersistence, Err: err}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

func IsKind(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}

// IsUniqueViolation reports whether err came from a unique index,
// on Postgres (SQLSTATE 23505) or SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
