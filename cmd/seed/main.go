package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/cache"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/config"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/ingest"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/repository"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/aurora-inventory/backend-go/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

type dbKey struct{}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey{}, postgres.Wrap(sqlx.NewDb(db, "pgx"), 4))
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey{}).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func ingestRepository(c *cli.Context) (*repository.IngestRepository, error) {
	db, ok := c.Context.Value(dbKey{}).(*postgres.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return repository.NewIngestRepository(db, config.Load().Warehouse)
}

func main() {
	logger.Setup(config.Load().Server.Mode)

	app := &cli.App{
		Name:  "seed",
		Usage: "Load inventory snapshots into the warehouse tables",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create the warehouse tables if they do not exist",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runSchema,
			},
			{
				Name:  "import",
				Usage: "Import CSV exports (stock health, daily stock, alerts)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing CSV exports",
						Value:   "./data/seeds",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runImport,
			},
			{
				Name:  "fetch",
				Usage: "Download CSV exports from S3-compatible storage, optionally importing them",
				Flags: append(fetchFlags(),
					&cli.StringFlag{
						Name:    "db-url",
						Usage:   "Database connection string (required with --import)",
						EnvVars: []string{"DATABASE_URL"},
					},
					&cli.BoolFlag{
						Name:  "import",
						Usage: "Import the downloaded files",
					},
				),
				Before: func(c *cli.Context) error {
					if !c.Bool("import") {
						return nil
					}
					if c.String("db-url") == "" {
						return fmt.Errorf("--db-url is required with --import")
					}
					return initDB(c)
				},
				After:  closeDB,
				Action: runFetch,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func runSchema(c *cli.Context) error {
	repo, err := ingestRepository(c)
	if err != nil {
		return err
	}
	if err := repo.EnsureSchema(c.Context); err != nil {
		return err
	}
	log.Info().Msg("warehouse schema ready")
	return nil
}

func runImport(c *cli.Context) error {
	paths, err := filepath.Glob(filepath.Join(c.String("data-dir"), "*.csv"))
	if err != nil {
		return fmt.Errorf("failed to list CSV files: %w", err)
	}
	if len(paths) == 0 {
		log.Warn().Str("dir", c.String("data-dir")).Msg("no CSV files found; nothing to import")
		return nil
	}
	sort.Strings(paths)
	return importFiles(c, paths)
}

func importFiles(c *cli.Context, paths []string) error {
	repo, err := ingestRepository(c)
	if err != nil {
		return err
	}

	report, err := ingest.NewLoader(repo).LoadFiles(c.Context, paths)
	if err != nil {
		return err
	}
	log.Info().
		Int("health", report[ingest.DatasetHealth]).
		Int("stock", report[ingest.DatasetStock]).
		Int("alerts", report[ingest.DatasetAlerts]).
		Msg("import finished")

	invalidateFilterOptions(c.Context)
	return nil
}

// invalidateFilterOptions drops cached location/item lists so the next
// dashboard request sees newly imported names.
func invalidateFilterOptions(ctx context.Context) {
	optionsCache, err := cache.NewFilterOptionsCache(config.Load().Cache)
	if err != nil {
		log.Warn().Err(err).Msg("filter options cache unavailable; skipping invalidation")
		return
	}
	if err := optionsCache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate filter options cache")
	}
}
