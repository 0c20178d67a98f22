package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/chainsafe/bitsave-middleware/pkg/config"
	"github.com/chainsafe/bitsave-middleware/pkg/migrations/savingsdb"
	"github.com/chainsafe/bitsave-middleware/pkg/pgutil"
	mghelper "github.com/chainsafe/bitsave-middleware/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err)
	}
	if !cfg.Database.Enabled() {
		log.Fatal("database.host is not set; flow history is disabled")
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("error creating logger: %s", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("running savings database migrations", zap.String("database", cfg.Database.Database))

	migrator := migrate.NewMigrator(db, savingsdb.Migrations)
	if err := mghelper.RunMigrations(ctx, migrator, logger, flag.Args()...); err != nil {
		if errors.Is(err, mghelper.ErrNoCommand) {
			mghelper.Exitf("%s", err)
		}
		logger.Fatal("migration failed", zap.Error(err))
	}
}
