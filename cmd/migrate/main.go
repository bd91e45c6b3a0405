package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
	envPostgresDSN = "STOREFRONT_POSTGRES_DSN"
)

func newApp(out io.Writer) *cli.App {
	dsnFlag := &cli.StringFlag{
		Name:    "dsn",
		Usage:   "PostgreSQL DSN",
		EnvVars: []string{envPostgresDSN},
	}
	timeoutFlag := &cli.DurationFlag{
		Name:  "timeout",
		Usage: "overall timeout for the command",
		Value: defaultTimeout,
	}
	stepsFlag := func(usage string) *cli.IntFlag {
		return &cli.IntFlag{Name: "steps", Usage: usage}
	}

	app := &cli.App{
		Name:      "migrate",
		Usage:     "manage the storefront PostgreSQL schema",
		Writer:    out,
		ErrWriter: out,
		Flags:     []cli.Flag{dsnFlag, timeoutFlag},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Flags: []cli.Flag{stepsFlag("number of migrations to apply (0 = all)")},
				Action: func(c *cli.Context) error {
					return withStore(c, func(ctx context.Context, store *postgres.Store) error {
						if err := store.MigrateUp(ctx, c.Int("steps")); err != nil {
							return fmt.Errorf("migrate up failed: %w", err)
						}
						return printStatus(ctx, c.App.Writer, store, "migrate up ok")
					})
				},
			},
			{
				Name:  "down",
				Usage: "roll back applied migrations",
				Flags: []cli.Flag{stepsFlag("number of migrations to roll back (default 1)")},
				Action: func(c *cli.Context) error {
					return withStore(c, func(ctx context.Context, store *postgres.Store) error {
						steps := c.Int("steps")
						if steps <= 0 {
							steps = 1
						}
						if err := store.MigrateDown(ctx, steps); err != nil {
							return fmt.Errorf("migrate down failed: %w", err)
						}
						return printStatus(ctx, c.App.Writer, store, "migrate down ok")
					})
				},
			},
			{
				Name:  "status",
				Usage: "print current schema version",
				Action: func(c *cli.Context) error {
					return withStore(c, func(ctx context.Context, store *postgres.Store) error {
						return printStatus(ctx, c.App.Writer, store, "migration status")
					})
				},
			},
		},
	}
	// Код выхода выставляет main, библиотека не должна вызывать os.Exit.
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

// withStore открывает хранилище по --dsn и выполняет fn в пределах --timeout.
func withStore(c *cli.Context, fn func(context.Context, *postgres.Store) error) error {
	dsn := strings.TrimSpace(c.String("dsn"))
	if dsn == "" {
		return errors.New(envPostgresDSN + " (or --dsn) is required")
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open postgres store: %w", err)
	}
	defer store.Close()

	return fn(ctx, store)
}

func printStatus(ctx context.Context, out io.Writer, store *postgres.Store, prefix string) error {
	version, count, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s: version=%d applied=%d\n", prefix, version, count)
	return err
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
