package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Candidate struct {
	gorm.Model
	ID        uuid.UUID `gorm:"primaryKey;"`
	FirstName string    `gorm:"not null"`
	LastName  string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex:candidates_org_id_email;not null"`
	OrgID     string    `gorm:"uniqueIndex:candidates_org_id_email;not null"`
	Phone     *string
	LinkedIn  *string
}

func (c Candidate) String() string {
	val, _ := json.Marshal(c)
	return string(val)
}
