package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/pipeline"
)

// StageHistory is one append-only ledger entry. Rows are never updated or
// deleted outside maintenance tooling; the autoincremented ID breaks ties
// between entries sharing the same changed_at.
type StageHistory struct {
	ID            uint      `gorm:"primaryKey"`
	ApplicationID uuid.UUID `gorm:"not null;index"`

	FromStage *pipeline.Stage      `gorm:"type:VARCHAR;size:50"` // nil only for the first entry
	ToStage   pipeline.Stage       `gorm:"type:VARCHAR;size:50;not null"`
	Status    pipeline.StageStatus `gorm:"type:VARCHAR;size:50;not null"`

	ChangedBy *string `gorm:"type:VARCHAR;size:255"` // nil for system-generated entries
	ChangedAt time.Time
	Notes     *string
}

type StageHistoryList []StageHistory
