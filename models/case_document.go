package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseDocument is the metadata row for a blob stored in external file
// storage. Append-only; uploaded by the owning advocate or an assigned
// associate.
type CaseDocument struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID     string `gorm:"type:uuid;not null;index" json:"case_id"`
	UploaderID string `gorm:"type:uuid;not null" json:"uploader_id"`

	Name        string `gorm:"not null" json:"name"`
	StoragePath string `gorm:"not null" json:"-"` // Not exposed in JSON for security
	SizeBytes   *int64 `json:"size_bytes,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`

	Case     Case     `gorm:"foreignKey:CaseID" json:"-"`
	Uploader *Profile `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
}

// BeforeCreate hook to generate UUID
func (d *CaseDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseDocument model
func (CaseDocument) TableName() string {
	return "case_documents"
}

// GetDownloadURL returns a safe download URL for this document
func (d *CaseDocument) GetDownloadURL() string {
	return "/api/cases/" + d.CaseID + "/documents/" + d.ID + "/download"
}
