package services

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"advocate_desk_go/authz"
	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"gorm.io/gorm"
)

const (
	// MaxDocumentSize is the upload size limit for case documents (25MB)
	MaxDocumentSize = 25 * 1024 * 1024
)

// UploadCaseDocument stores a blob for a case the actor may contribute to
// and inserts its metadata row. The blob goes out first; a metadata insert
// failure leaves an unreferenced blob, which is preferable to a metadata
// row pointing at nothing.
func UploadCaseDocument(ctx context.Context, db *gorm.DB, actor *authz.Actor, caseID string, file *multipart.FileHeader) (*models.CaseDocument, error) {
	if !authz.Can(actor, authz.ActionCreate, authz.EntityCaseDocument) {
		return nil, errs.ErrForbidden
	}
	kase, err := authz.ContributableCase(db, actor, caseID)
	if err != nil {
		return nil, err
	}

	if file.Size > MaxDocumentSize {
		return nil, errs.Validation("File exceeds the maximum size of 25MB")
	}
	if file.Filename == "" {
		return nil, errs.Validation("File name is required")
	}

	key := GenerateCaseDocumentKey(kase.ID, file.Filename)
	result, err := Storage.Upload(ctx, file, key)
	if err != nil {
		return nil, errs.Dependency("upload document", err)
	}

	size := result.FileSize
	doc := &models.CaseDocument{
		CaseID:      kase.ID,
		UploaderID:  actor.ID,
		Name:        file.Filename,
		StoragePath: result.Key,
		SizeBytes:   &size,
		MimeType:    result.MimeType,
	}
	if err := db.Create(doc).Error; err != nil {
		return nil, errs.Dependency("save document metadata", err)
	}
	return doc, nil
}

// ListCaseDocuments returns the document metadata of a case. Clients have
// no document access; for them the case's documents do not exist.
func ListCaseDocuments(db *gorm.DB, actor *authz.Actor, caseID string) ([]models.CaseDocument, error) {
	if !authz.Can(actor, authz.ActionRead, authz.EntityCaseDocument) {
		return nil, errs.ErrForbidden
	}
	if _, err := authz.VisibleCase(db, actor, caseID); err != nil {
		return nil, err
	}

	var docs []models.CaseDocument
	err := db.Preload("Uploader").Where("case_id = ?", caseID).
		Order("created_at DESC").Find(&docs).Error
	if err != nil {
		return nil, errs.Dependency("list documents", err)
	}
	return docs, nil
}

// OpenCaseDocument streams a stored document for download, re-checking
// visibility on both the case and the metadata row.
func OpenCaseDocument(ctx context.Context, db *gorm.DB, actor *authz.Actor, caseID, documentID string) (*models.CaseDocument, io.ReadCloser, string, error) {
	if !authz.Can(actor, authz.ActionRead, authz.EntityCaseDocument) {
		return nil, nil, "", errs.ErrForbidden
	}
	if _, err := authz.VisibleCase(db, actor, caseID); err != nil {
		return nil, nil, "", err
	}

	var doc models.CaseDocument
	err := db.Where("case_id = ?", caseID).First(&doc, "id = ?", documentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, "", errs.ErrNotFound
		}
		return nil, nil, "", errs.Dependency("fetch document", err)
	}

	reader, contentType, err := Storage.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, "", errs.Dependency("open document", err)
	}
	return &doc, reader, contentType, nil
}
