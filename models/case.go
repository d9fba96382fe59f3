package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusOpen    = "open"
	CaseStatusPending = "pending"
	CaseStatusClosed  = "closed"
)

// Case represents a legal case owned by exactly one advocate and optionally
// linked to one client profile of the same advocate.
type Case struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owner
	AdvocateID string  `gorm:"type:uuid;not null;index:idx_case_advocate_status" json:"advocate_id"`
	Advocate   Profile `gorm:"foreignKey:AdvocateID" json:"advocate,omitempty"`

	// Client relationship (Profile with role 'client')
	ClientID *string  `gorm:"type:uuid;index" json:"client_id"`
	Client   *Profile `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	CaseNumber  *string `gorm:"size:100;index" json:"case_number,omitempty"`
	Court       *string `gorm:"size:200" json:"court,omitempty"`

	Status          string     `gorm:"not null;default:open;index:idx_case_advocate_status" json:"status"`
	NextHearingDate *time.Time `json:"next_hearing_date,omitempty"`

	// Relationships
	Updates   []CaseUpdate   `gorm:"foreignKey:CaseID" json:"updates,omitempty"`
	Payments  []Payment      `gorm:"foreignKey:CaseID" json:"payments,omitempty"`
	Documents []CaseDocument `gorm:"foreignKey:CaseID" json:"documents,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsClosed checks if the case is closed
func (c *Case) IsClosed() bool {
	return c.Status == CaseStatusClosed
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	switch status {
	case CaseStatusOpen, CaseStatusPending, CaseStatusClosed:
		return true
	}
	return false
}
