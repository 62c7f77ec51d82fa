package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/powhr/talentflow/internal/pipeline"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/internal/store/model"
	"go.uber.org/zap"
)

// ReconcileHistories rebuilds the ledger for applications that have a
// projection but no history entries. Such rows can only come from imports
// or manual surgery; normal writes always carry their entries. The
// reconstructed entries walk the pipeline from the first stage to the
// application's current stage, all timestamped with the row's creation
// time. Returns the number of applications repaired.
func (s *PipelineService) ReconcileHistories(ctx context.Context) (int, error) {
	logger := zap.S().Named("reconcile")

	applications, err := s.store.Application().List(ctx, store.NewApplicationQueryFilter().WithoutHistory())
	if err != nil {
		return 0, errors.Wrap(err, "listing applications without history")
	}

	repaired := 0
	for i := range applications {
		application := applications[i]

		idx := pipeline.StageIndex(application.CurrentStage)
		if idx < 0 {
			logger.Warnw("skipping application with unknown stage",
				"application_id", application.ID,
				"current_stage", application.CurrentStage,
			)
			continue
		}

		entries := make([]model.StageHistory, 0, idx+1)
		for j := 0; j <= idx; j++ {
			entry := model.StageHistory{
				ApplicationID: application.ID,
				ToStage:       pipeline.StageOrder[j],
				Status:        pipeline.StatusCompleted,
				ChangedAt:     application.CreatedAt,
			}
			if j > 0 {
				entry.FromStage = &pipeline.StageOrder[j-1]
			}
			if j == idx {
				entry.Status = application.CurrentStageStatus
			}
			entries = append(entries, entry)
		}

		tctx, err := s.store.NewTransactionContext(ctx)
		if err != nil {
			return repaired, errors.Wrap(err, "opening reconcile transaction")
		}
		if err := s.store.StageHistory().Backfill(tctx, entries); err != nil {
			_, _ = store.Rollback(tctx)
			return repaired, errors.Wrapf(err, "backfilling history for application %s", application.ID)
		}
		if _, err := store.Commit(tctx); err != nil {
			return repaired, errors.Wrapf(err, "committing backfill for application %s", application.ID)
		}

		logger.Infow("rebuilt application history",
			"application_id", application.ID,
			"entries", len(entries),
			"current_stage", application.CurrentStage,
		)
		repaired++
	}

	return repaired, nil
}
