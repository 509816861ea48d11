// AngelaMos | 2026
// reconciler.go

package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/teamcomm/internal/core"
)

type Kind string

const (
	KindSchema     Kind = "schema"
	KindTable      Kind = "table"
	KindColumn     Kind = "column"
	KindConstraint Kind = "constraint"
	KindIndex      Kind = "index"
)

type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomePresent Outcome = "present"
	OutcomeFailed  Outcome = "failed"
)

// Executor runs DDL. *sqlx.DB and *sql.DB both satisfy it.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Step struct {
	Kind       Kind     `json:"kind"`
	Target     string   `json:"target"`
	Outcome    Outcome  `json:"outcome"`
	Statements []string `json:"statements,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type Report struct {
	Schema    string        `json:"schema"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Steps     []Step        `json:"steps"`
}

func (r Report) count(o Outcome) int {
	n := 0
	for _, s := range r.Steps {
		if s.Outcome == o {
			n++
		}
	}
	return n
}

func (r Report) Applied() int { return r.count(OutcomeApplied) }
func (r Report) Present() int { return r.count(OutcomePresent) }
func (r Report) Failed() int  { return r.count(OutcomeFailed) }

// Statements returns every DDL statement the run executed, in order.
func (r Report) Statements() []string {
	var out []string
	for _, s := range r.Steps {
		if s.Outcome == OutcomeApplied {
			out = append(out, s.Statements...)
		}
	}
	return out
}

// Failures returns the failed steps only.
func (r Report) Failures() []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Outcome == OutcomeFailed {
			out = append(out, s)
		}
	}
	return out
}

type Option func(*Reconciler)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

func WithMetrics(m *core.Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// Reconciler aligns the live schema with a Plan using check-then-act on
// catalog metadata. It only adds: schemas, tables, columns, constraints and
// indexes. Nothing is dropped, renamed or altered in place.
type Reconciler struct {
	catalog Catalog
	exec    Executor
	schema  string
	logger  *slog.Logger
	metrics *core.Metrics

	mu   sync.RWMutex
	last *Report
}

func New(
	catalog Catalog,
	exec Executor,
	schema string,
	opts ...Option,
) *Reconciler {
	r := &Reconciler{
		catalog: catalog,
		exec:    exec,
		schema:  schema,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewForDatabase wires the information_schema inspector and the executor to
// the same connection pool.
func NewForDatabase(db core.DBTX, schema string, opts ...Option) *Reconciler {
	return New(NewInspector(db), db, schema, opts...)
}

// Run executes every step of the plan in order. A failed step is logged and
// recorded; the remaining steps still run.
func (r *Reconciler) Run(ctx context.Context, plan Plan) Report {
	ctx, span := core.StartSpan(ctx, "schema.reconcile",
		attribute.String("db.schema", r.schema),
	)
	defer span.End()

	report := Report{Schema: r.schema, StartedAt: time.Now()}
	record := func(step Step) {
		report.Steps = append(report.Steps, step)
	}

	record(r.EnsureSchema(ctx))

	for _, t := range plan.Tables {
		step := r.EnsureTable(ctx, t)
		record(step)
		if step.Outcome != OutcomePresent {
			continue
		}
		for _, idx := range t.Indexes {
			record(r.EnsureIndex(ctx, idx))
		}
	}

	for _, c := range plan.Columns {
		step := r.EnsureColumn(ctx, c)
		record(step)
		if c.Index && step.Outcome == OutcomePresent {
			record(r.EnsureIndex(ctx, r.columnIndex(c)))
		}
	}

	for _, c := range plan.Constraints {
		record(r.EnsureConstraint(ctx, c))
	}

	for _, idx := range plan.Indexes {
		record(r.EnsureIndex(ctx, idx))
	}

	report.Duration = time.Since(report.StartedAt)

	r.logger.Info("schema reconciled",
		"schema", r.schema,
		"applied", report.Applied(),
		"present", report.Present(),
		"failed", report.Failed(),
		"duration", report.Duration,
	)

	r.mu.Lock()
	r.last = &report
	r.mu.Unlock()

	return report
}

// Reconcile runs the team communication plan against the configured schema.
func (r *Reconciler) Reconcile(ctx context.Context) Report {
	return r.Run(ctx, TeamComm(r.schema))
}

// Last returns the report of the most recent Run, or nil.
func (r *Reconciler) Last() *Report {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

func (r *Reconciler) EnsureSchema(ctx context.Context) Step {
	step := Step{Kind: KindSchema, Target: r.schema}

	exists, err := r.catalog.SchemaExists(ctx, r.schema)
	if err != nil {
		return r.fail(ctx, step, err)
	}
	if exists {
		return r.present(step)
	}

	return r.apply(ctx, step, "CREATE SCHEMA IF NOT EXISTS "+ident(r.schema))
}

// EnsureTable runs the table DDL and then its index DDL when the table is
// absent from information_schema.tables.
func (r *Reconciler) EnsureTable(ctx context.Context, t Table) Step {
	step := Step{Kind: KindTable, Target: t.Name}

	exists, err := r.catalog.TableExists(ctx, r.schema, t.Name)
	if err != nil {
		return r.fail(ctx, step, err)
	}
	if exists {
		return r.present(step)
	}

	stmts := make([]string, 0, 1+len(t.Indexes))
	stmts = append(stmts, t.DDL)
	for _, idx := range t.Indexes {
		stmts = append(stmts, idx.DDL)
	}

	return r.apply(ctx, step, stmts...)
}

// EnsureColumn adds the column when absent from information_schema.columns,
// followed by its supporting index when requested.
func (r *Reconciler) EnsureColumn(ctx context.Context, c Column) Step {
	step := Step{Kind: KindColumn, Target: c.Table + "." + c.Name}

	exists, err := r.catalog.ColumnExists(ctx, r.schema, c.Table, c.Name)
	if err != nil {
		return r.fail(ctx, step, err)
	}
	if exists {
		return r.present(step)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD COLUMN %s %s",
		qualify(r.schema, c.Table), ident(c.Name), c.Type)
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}

	stmts := []string{b.String()}
	if c.Index {
		stmts = append(stmts, r.columnIndex(c).DDL)
	}

	return r.apply(ctx, step, stmts...)
}

func (r *Reconciler) EnsureConstraint(ctx context.Context, c Constraint) Step {
	step := Step{Kind: KindConstraint, Target: c.Table + "." + c.Name}

	exists, err := r.catalog.ConstraintExists(ctx, r.schema, c.Table, c.Name)
	if err != nil {
		return r.fail(ctx, step, err)
	}
	if exists {
		return r.present(step)
	}

	return r.apply(ctx, step, c.DDL)
}

func (r *Reconciler) EnsureIndex(ctx context.Context, idx Index) Step {
	step := Step{Kind: KindIndex, Target: idx.Name}

	exists, err := r.catalog.IndexExists(ctx, r.schema, idx.Name)
	if err != nil {
		return r.fail(ctx, step, err)
	}
	if exists {
		return r.present(step)
	}

	return r.apply(ctx, step, idx.DDL)
}

func (r *Reconciler) columnIndex(c Column) Index {
	name := c.indexName()
	return Index{
		Name:  name,
		Table: c.Table,
		DDL: fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			ident(name), qualify(r.schema, c.Table), ident(c.Name)),
	}
}

func (r *Reconciler) apply(ctx context.Context, step Step, stmts ...string) Step {
	for _, stmt := range stmts {
		step.Statements = append(step.Statements, stmt)
		if _, err := r.exec.ExecContext(ctx, stmt); err != nil {
			return r.fail(ctx, step, err)
		}
	}

	step.Outcome = OutcomeApplied
	r.metrics.ObserveSchemaStep(string(step.Kind), string(step.Outcome))
	core.AddSpanEvent(ctx, "schema.step.applied",
		attribute.String("kind", string(step.Kind)),
		attribute.String("target", step.Target),
	)
	r.logger.Info("schema step applied",
		"kind", step.Kind,
		"target", step.Target,
	)

	return step
}

func (r *Reconciler) present(step Step) Step {
	step.Outcome = OutcomePresent
	r.metrics.ObserveSchemaStep(string(step.Kind), string(step.Outcome))
	return step
}

func (r *Reconciler) fail(ctx context.Context, step Step, err error) Step {
	step.Outcome = OutcomeFailed
	step.Error = err.Error()
	r.metrics.ObserveSchemaStep(string(step.Kind), string(step.Outcome))
	core.AddSpanEvent(ctx, "schema.step.failed",
		attribute.String("kind", string(step.Kind)),
		attribute.String("target", step.Target),
	)
	r.logger.Warn("schema step skipped",
		"kind", step.Kind,
		"target", step.Target,
		"error", err,
	)
	return step
}
