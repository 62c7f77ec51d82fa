package pipeline

import "fmt"

// StageStatus describes the application's condition within its current stage.
type StageStatus string

const (
	StatusPending          StageStatus = "PENDING"
	StatusInProgress       StageStatus = "IN_PROGRESS"
	StatusCompleted        StageStatus = "COMPLETED"
	StatusDiscardedInStage StageStatus = "DISCARDED_IN_STAGE"
	StatusOnHold           StageStatus = "ON_HOLD"
)

var stageStatuses = []StageStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusDiscardedInStage,
	StatusOnHold,
}

func ParseStageStatus(s string) (StageStatus, error) {
	status := StageStatus(s)
	for _, known := range stageStatuses {
		if known == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown stage status %q", s)
}
