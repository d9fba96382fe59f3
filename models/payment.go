package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment status constants
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// Payment is a fee entry on a case. Owned by the case's advocate; the case's
// client sees it read-only; associates have no access.
type Payment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID     string `gorm:"type:uuid;not null;index" json:"case_id"`
	AdvocateID string `gorm:"type:uuid;not null;index" json:"advocate_id"`

	Description string     `gorm:"not null" json:"description"`
	Amount      float64    `gorm:"not null" json:"amount"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `gorm:"not null;default:pending" json:"status"`

	Case Case `gorm:"foreignKey:CaseID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Payment model
func (Payment) TableName() string {
	return "payments"
}

// IsValidPaymentStatus checks if the status is valid
func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}
