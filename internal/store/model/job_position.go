package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobPosition struct {
	gorm.Model
	ID          uuid.UUID `gorm:"primaryKey;"`
	Title       string    `gorm:"uniqueIndex:job_positions_org_id_title;not null"`
	OrgID       string    `gorm:"uniqueIndex:job_positions_org_id_title;not null"`
	Department  string
	Location    string
	Description string

	Applications []Application `gorm:"foreignKey:PositionID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (p JobPosition) String() string {
	val, _ := json.Marshal(p)
	return string(val)
}
