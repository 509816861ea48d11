// AngelaMos | 2026
// plan.go

package schema

import (
	"github.com/jackc/pgx/v5"
)

// Plan is the expected shape of the schema. Steps run in declaration order:
// tables, then columns, then constraints, then standalone indexes.
type Plan struct {
	Schema      string
	Tables      []Table
	Columns     []Column
	Constraints []Constraint
	Indexes     []Index
}

// Table is created from DDL when absent, together with its indexes.
type Table struct {
	Name    string
	DDL     string
	Indexes []Index
}

// Column is added with ALTER TABLE when absent. Type and Default are written
// verbatim; an empty Default leaves the column nullable without default.
// Index requests a supporting index for columns used in filters.
type Column struct {
	Table   string
	Name    string
	Type    string
	Default string
	Index   bool
}

func (c Column) indexName() string {
	return "idx_" + c.Table + "_" + c.Name
}

type Constraint struct {
	Table string
	Name  string
	DDL   string
}

type Index struct {
	Name  string
	Table string
	DDL   string
}

func qualify(schema, name string) string {
	if schema == "" {
		return pgx.Identifier{name}.Sanitize()
	}
	return pgx.Identifier{schema, name}.Sanitize()
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
