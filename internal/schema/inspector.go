// AngelaMos | 2026
// inspector.go

package schema

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/teamcomm/internal/core"
)

// Catalog answers existence questions about the live schema.
type Catalog interface {
	SchemaExists(ctx context.Context, schema string) (bool, error)
	TableExists(ctx context.Context, schema, table string) (bool, error)
	ColumnExists(ctx context.Context, schema, table, column string) (bool, error)
	ConstraintExists(ctx context.Context, schema, table, name string) (bool, error)
	IndexExists(ctx context.Context, schema, name string) (bool, error)
}

type inspector struct {
	db core.DBTX
}

// NewInspector reads information_schema and pg_indexes.
func NewInspector(db core.DBTX) Catalog {
	return &inspector{db: db}
}

func (i *inspector) exists(
	ctx context.Context,
	what, query string,
	args ...any,
) (bool, error) {
	var found bool
	if err := i.db.GetContext(ctx, &found, query, args...); err != nil {
		return false, fmt.Errorf("check %s: %w", what, err)
	}
	return found, nil
}

func (i *inspector) SchemaExists(
	ctx context.Context,
	schema string,
) (bool, error) {
	return i.exists(ctx, "schema", `
		SELECT EXISTS(
			SELECT 1 FROM information_schema.schemata
			WHERE schema_name = $1
		)`, schema)
}

func (i *inspector) TableExists(
	ctx context.Context,
	schema, table string,
) (bool, error) {
	return i.exists(ctx, "table", `
		SELECT EXISTS(
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
		)`, schema, table)
}

func (i *inspector) ColumnExists(
	ctx context.Context,
	schema, table, column string,
) (bool, error) {
	return i.exists(ctx, "column", `
		SELECT EXISTS(
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = $1 AND table_name = $2 AND column_name = $3
		)`, schema, table, column)
}

func (i *inspector) ConstraintExists(
	ctx context.Context,
	schema, table, name string,
) (bool, error) {
	return i.exists(ctx, "constraint", `
		SELECT EXISTS(
			SELECT 1 FROM information_schema.table_constraints
			WHERE constraint_schema = $1 AND table_name = $2
			  AND constraint_name = $3
		)`, schema, table, name)
}

func (i *inspector) IndexExists(
	ctx context.Context,
	schema, name string,
) (bool, error) {
	return i.exists(ctx, "index", `
		SELECT EXISTS(
			SELECT 1 FROM pg_indexes
			WHERE schemaname = $1 AND indexname = $2
		)`, schema, name)
}
