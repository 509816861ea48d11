// AngelaMos | 2026
// reconcile.go

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/carterperez-dev/teamcomm/internal/schema"
)

type ReconcileCmd struct {
	JSON   bool `help:"Print the report as JSON."`
	Strict bool `help:"Exit non-zero when any step failed."`
}

func (c *ReconcileCmd) Run(ctx context.Context, g *Globals) error {
	_, logger, db, err := bootstrap(ctx, g)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits next

	report := newReconciler(db, logger, nil).Reconcile(ctx)

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if c.Strict && report.Failed() > 0 {
		return fmt.Errorf("%d schema steps failed", report.Failed())
	}
	return nil
}

func printReport(r schema.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tTARGET\tOUTCOME\tDETAIL")
	for _, s := range r.Steps {
		detail := s.Error
		if detail == "" && len(s.Statements) > 0 {
			detail = fmt.Sprintf("%d statement(s)", len(s.Statements))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Kind, s.Target, s.Outcome, detail)
	}
	w.Flush() //nolint:errcheck // stdout

	fmt.Printf("\nschema %s: %d applied, %d present, %d failed in %s\n",
		r.Schema, r.Applied(), r.Present(), r.Failed(), r.Duration)
}
