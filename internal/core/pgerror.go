// AngelaMos | 2026
// pgerror.go

package core

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError converts driver errors into the package's sentinel errors.
// Errors that are not PostgreSQL errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &ConstraintError{
			Kind:       ErrDuplicateKey,
			Constraint: pgErr.ConstraintName,
			Column:     pgErr.ColumnName,
			Detail:     pgErr.Detail,
			Err:        err,
		}

	case pgerrcode.CheckViolation:
		return &ConstraintError{
			Kind:       ErrValidation,
			Constraint: pgErr.ConstraintName,
			Column:     pgErr.ColumnName,
			Detail:     pgErr.Message,
			Err:        err,
		}

	case pgerrcode.ForeignKeyViolation:
		return &ConstraintError{
			Kind:       ErrInvalidInput,
			Constraint: pgErr.ConstraintName,
			Detail:     pgErr.Detail,
			Err:        err,
		}

	case pgerrcode.NotNullViolation,
		pgerrcode.StringDataRightTruncationDataException,
		pgerrcode.InvalidTextRepresentation:
		return &ConstraintError{
			Kind:   ErrValidation,
			Column: pgErr.ColumnName,
			Detail: pgErr.Message,
			Err:    err,
		}

	case pgerrcode.UndefinedColumn,
		pgerrcode.UndefinedTable,
		pgerrcode.InsufficientPrivilege:
		return fmt.Errorf("%w: %s: %w", ErrPersistence, pgErr.Message, err)

	default:
		return fmt.Errorf("postgres error [%s]: %s: %w", pgErr.Code, pgErr.Message, err)
	}
}

func IsDuplicateKey(err error) bool {
	return errors.Is(MapDBError(err), ErrDuplicateKey)
}
