package main

import (
	"github.com/powhr/talentflow/internal/config"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/pkg/log"
	"github.com/powhr/talentflow/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
		if err != nil {
			logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}

		logger := log.InitLog(logLvl)
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		defer zap.S().Info("Db migrated")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		if cfg.Service.MigrationFolder != "" {
			if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
				zap.S().Fatalw("running migrations", "error", err)
			}
			return nil
		}

		if err := store.InitialMigration(); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}

		return nil
	},
}
