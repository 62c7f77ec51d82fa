package main

import (
	"context"

	"github.com/powhr/talentflow/internal/config"
	"github.com/powhr/talentflow/internal/service"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Rebuild missing stage histories",
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

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		repaired, err := service.NewPipelineService(store).ReconcileHistories(context.Background())
		if err != nil {
			zap.S().Fatalw("reconciling histories", "error", err)
		}

		zap.S().Infow("reconciliation finished", "repaired", repaired)
		return nil
	},
}
