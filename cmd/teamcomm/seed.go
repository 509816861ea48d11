// AngelaMos | 2026
// seed.go

package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/carterperez-dev/teamcomm/internal/seed"
)

type SeedCmd struct {
	Password  string `help:"Password for every seeded account." required:"" env:"TEAMCOMM_SEED_PASSWORD"`
	Reconcile bool   `help:"Reconcile the schema before seeding." default:"true" negatable:""`
}

func (c *SeedCmd) Run(ctx context.Context, g *Globals) error {
	_, logger, db, err := bootstrap(ctx, g)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits next

	if c.Reconcile {
		if report := newReconciler(db, logger, nil).Reconcile(ctx); report.Failed() > 0 {
			return fmt.Errorf("%d schema steps failed, not seeding", report.Failed())
		}
	}

	res, err := seed.Run(ctx, db.DB, seed.Demo(c.Password))
	if err != nil {
		return err
	}

	names := make([]string, 0, len(res.Users))
	for name := range res.Users {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%-12s %s\n", name, res.Users[name])
	}
	fmt.Printf("%d records created\n", res.Created)
	return nil
}
