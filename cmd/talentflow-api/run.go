package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/powhr/talentflow/internal/api_server"
	"github.com/powhr/talentflow/internal/config"
	"github.com/powhr/talentflow/internal/events"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the talentflow api",
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

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		if err := store.InitialMigration(); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}

		eventWriter := events.NewEventProducer(&events.StdoutWriter{})
		defer eventWriter.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, store, listener, eventWriter)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("running api server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating metrics listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, store)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
