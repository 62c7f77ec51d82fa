package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const stageGaugeRefreshInterval = 1 * time.Minute

type MetricServer struct {
	bindAddress string
	httpServer  *http.Server
	listener    net.Listener
	store       store.Store
}

func NewMetricServer(bindAddress string, listener net.Listener, store store.Store) *MetricServer {
	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())

	s := &MetricServer{
		bindAddress: bindAddress,
		listener:    listener,
		store:       store,
		httpServer: &http.Server{
			Addr:    bindAddress,
			Handler: router,
		},
	}

	return s
}

func (m *MetricServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		m.httpServer.SetKeepAlivesEnabled(false)
		_ = m.httpServer.Shutdown(ctxTimeout)
		zap.S().Named("metrics_server").Info("metrics server terminated")
	}()

	ticker := time.NewTicker(stageGaugeRefreshInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.refreshStageGauge(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	zap.S().Named("metrics_server").Infof("serving metrics: %s", m.bindAddress)
	if err := m.httpServer.Serve(m.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (m *MetricServer) refreshStageGauge(ctx context.Context) {
	stats, err := m.store.Statistics(ctx)
	if err != nil {
		zap.S().Named("metrics_server").Errorw("failed to collect pipeline statistics", "error", err)
		return
	}

	for stage, count := range stats.CountPerStage {
		metrics.UpdateApplicationStageCountMetric(string(stage), count)
	}
}
