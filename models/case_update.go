package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseUpdate is an append-only progress note on a case. Authors are the
// owning advocate or associates assigned to the case; there is no edit or
// delete path.
type CaseUpdate struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID   string `gorm:"type:uuid;not null;index" json:"case_id"`
	AuthorID string `gorm:"type:uuid;not null" json:"author_id"`

	Content     string     `gorm:"type:text;not null" json:"content"`
	HearingDate *time.Time `json:"hearing_date,omitempty"`

	Case   Case     `gorm:"foreignKey:CaseID" json:"-"`
	Author *Profile `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// BeforeCreate hook to generate UUID
func (u *CaseUpdate) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseUpdate model
func (CaseUpdate) TableName() string {
	return "case_updates"
}
