package models

import (
	"time"

	"gorm.io/gorm"
)

// CaseAssociate is the membership edge between a case and an associate
// profile. Assignment is explicit: an associate belonging to an advocate is
// not automatically on that advocate's cases.
type CaseAssociate struct {
	CaseID      string    `gorm:"type:uuid;primaryKey" json:"case_id"`
	AssociateID string    `gorm:"type:uuid;primaryKey;index" json:"associate_id"`
	AddedAt     time.Time `gorm:"not null" json:"added_at"`

	Case      Case    `gorm:"foreignKey:CaseID" json:"-"`
	Associate Profile `gorm:"foreignKey:AssociateID" json:"associate,omitempty"`
}

// BeforeCreate hook to stamp AddedAt
func (ca *CaseAssociate) BeforeCreate(tx *gorm.DB) error {
	if ca.AddedAt.IsZero() {
		ca.AddedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for CaseAssociate model
func (CaseAssociate) TableName() string {
	return "case_associates"
}
