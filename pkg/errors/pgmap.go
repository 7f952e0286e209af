package errors

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net"

	"github.com/uptrace/bun/driver/pgdriver"
)

// sqlstateCodes maps Postgres SQLSTATE values onto the taxonomy.
// States not listed here fall back to their two-character class.
var sqlstateCodes = map[string]Code{
	"23505": CodeConflict,           // unique_violation
	"23503": CodeConflict,           // foreign_key_violation
	"23502": CodeInvalidInput,       // not_null_violation
	"23514": CodeFailedPrecondition, // check_violation
	"P0001": CodeFailedPrecondition, // raise_exception
	"40001": CodeUnavailable,        // serialization_failure
	"40P01": CodeUnavailable,        // deadlock_detected
	"55P03": CodeUnavailable,        // lock_not_available
	"57014": CodeUnavailable,        // query_canceled
}

var sqlstateClassCodes = map[string]Code{
	"08": CodeUnavailable,  // connection exceptions
	"22": CodeInvalidInput, // data exceptions
	"53": CodeUnavailable,  // insufficient resources
	"57": CodeUnavailable,  // operator intervention
}

func codeForSQLState(state string) Code {
	if code, ok := sqlstateCodes[state]; ok {
		return code
	}
	if len(state) >= 2 {
		if code, ok := sqlstateClassCodes[state[:2]]; ok {
			return code
		}
	}
	return CodeInternal
}

// FromPg classifies a storage error into the taxonomy. The op string names
// the repository call site, in the same style the repositories wrap causes.
func FromPg(op string, err error) error {
	if err == nil {
		return nil
	}
	var app *AppError
	if errors.As(err, &app) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return Wrap(CodeNotFound, op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.EOF) {
		return Wrap(CodeUnavailable, op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Wrap(CodeUnavailable, op, err)
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return Wrap(codeForSQLState(pgErr.Field('C')), op, err)
	}
	return Wrap(CodeInternal, op, err)
}
