package models

import (
	"time"
)

// Credential is the backing row of the local identity provider. Its ID is
// the identity's user id; the Profile with the same ID is the directory
// entry for that identity.
type Credential struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// TableName specifies the table name for Credential model
func (Credential) TableName() string {
	return "credentials"
}
