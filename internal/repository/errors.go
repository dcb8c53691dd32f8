package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Constraint violations surfaced by PostgreSQL
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// PostgreSQL SQLSTATE codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// ConstraintError wraps a driver error with the violated constraint
type ConstraintError struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return e.Kind.Error() + " (" + e.Constraint + "): " + e.Err.Error()
}

// Is matches the violation kind so callers can use errors.Is
func (e *ConstraintError) Is(target error) bool {
	return target == e.Kind
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// ViolatedConstraint returns the constraint name if err is a ConstraintError
func ViolatedConstraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// classify turns pq constraint errors into ConstraintErrors
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case codeUniqueViolation:
		return &ConstraintError{Kind: ErrUniqueViolation, Constraint: pqErr.Constraint, Err: err}
	case codeForeignKeyViolation:
		return &ConstraintError{Kind: ErrForeignKeyViolation, Constraint: pqErr.Constraint, Err: err}
	}
	return err
}

// affected reports whether a statement touched at least one row
func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so s matches literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
