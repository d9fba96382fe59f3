package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile roles
const (
	RoleAdvocate  = "advocate"
	RoleAssociate = "associate"
	RoleClient    = "client"
)

// Profile is a user's directory entry. Advocates are tenant roots; associates
// and clients carry the owning advocate's id in AdvocateID.
type Profile struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `gorm:"not null" json:"full_name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string `json:"phone"`
	Role     string `gorm:"not null;index" json:"role"`

	// Nullable - null exactly when Role is advocate
	AdvocateID *string  `gorm:"type:uuid;index" json:"advocate_id"`
	Advocate   *Profile `gorm:"foreignKey:AdvocateID" json:"advocate,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Profile model
func (Profile) TableName() string {
	return "profiles"
}

// IsAdvocate checks if the profile is an advocate (tenant root)
func (p *Profile) IsAdvocate() bool {
	return p.Role == RoleAdvocate
}

// OwningAdvocateID returns the advocate the profile belongs to. An advocate
// is their own root.
func (p *Profile) OwningAdvocateID() string {
	if p.Role == RoleAdvocate {
		return p.ID
	}
	if p.AdvocateID != nil {
		return *p.AdvocateID
	}
	return ""
}

// IsValidRole checks if the role is one of the known profile roles
func IsValidRole(role string) bool {
	switch role {
	case RoleAdvocate, RoleAssociate, RoleClient:
		return true
	}
	return false
}

// IsValidMemberRole checks if the role may be assigned through the
// member-creation path (advocates are only created at signup)
func IsValidMemberRole(role string) bool {
	return role == RoleAssociate || role == RoleClient
}
