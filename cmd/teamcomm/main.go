// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

var version = "dev"

type Globals struct {
	Config  string `help:"Path to the YAML config file." default:"config.yaml" env:"TEAMCOMM_CONFIG" type:"path"`
	Version string `kong:"-"`
}

type CLI struct {
	Globals

	Serve     ServeCmd         `cmd:"" default:"1" help:"Reconcile the schema and start the HTTP API."`
	Reconcile ReconcileCmd     `cmd:"" help:"Reconcile the database schema and print the report."`
	Sessions  SessionsCmd      `cmd:"" help:"Session maintenance."`
	Seed      SeedCmd          `cmd:"" help:"Create the demo workspaces and accounts if missing."`
	Ver       kong.VersionFlag `name:"version" help:"Print version and exit."`
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	var cli CLI
	cmd := kong.Parse(&cli,
		kong.Name("teamcomm"),
		kong.Description("Team communication backend."),
		kong.Vars{"version": version},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	cli.Globals.Version = version
	err := cmd.Run(&cli.Globals)
	cmd.FatalIfErrorf(err)
}
