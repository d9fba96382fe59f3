package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"advocate_desk_go/authz"
	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// updatePolicy strips all markup from update notes before they are stored.
var updatePolicy = bluemonday.StrictPolicy()

// UpdateInput is the payload for posting a case update. Status change,
// hearing date and document are optional side effects of the note.
type UpdateInput struct {
	Content     string
	HearingDate *time.Time
	NewStatus   string
	File        *multipart.FileHeader
}

// UpdateResult reports what the orchestrated save actually did. On a
// partial failure the note is present and the returned error describes the
// failed side effect.
type UpdateResult struct {
	Update        *models.CaseUpdate   `json:"update"`
	StatusChanged bool                 `json:"status_changed"`
	Document      *models.CaseDocument `json:"document,omitempty"`
}

// SaveCaseUpdate appends a progress note and then applies the optional
// status/hearing-date change and document upload, in that order. Failures
// after the note is inserted are reported but never roll it back: the note
// is the primary user intent, and a saved note without a status change is
// still useful. This is deliberately asymmetric with the member-creation
// compensation.
func SaveCaseUpdate(ctx context.Context, db *gorm.DB, actor *authz.Actor, caseID string, input UpdateInput) (*UpdateResult, error) {
	if !authz.Can(actor, authz.ActionCreate, authz.EntityCaseUpdate) {
		return nil, errs.ErrForbidden
	}

	kase, err := authz.ContributableCase(db, actor, caseID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(updatePolicy.Sanitize(input.Content))
	if content == "" {
		return nil, errs.Validation("Update note is required")
	}

	update := &models.CaseUpdate{
		CaseID:      kase.ID,
		AuthorID:    actor.ID,
		Content:     content,
		HearingDate: input.HearingDate,
	}
	if err := db.Create(update).Error; err != nil {
		return nil, errs.Dependency("save case update", err)
	}

	result := &UpdateResult{Update: update}

	if err := applyCaseSideEffects(db, kase, input); err != nil {
		return result, err
	}
	if input.NewStatus != "" && input.NewStatus != kase.Status {
		result.StatusChanged = true
	}

	if input.File != nil {
		doc, err := UploadCaseDocument(ctx, db, actor, kase.ID, input.File)
		if err != nil {
			return result, err
		}
		result.Document = doc
	}

	return result, nil
}

// applyCaseSideEffects performs the optional status and hearing-date change
// of a case update. Validated here rather than at entry so a bad status
// request cannot block the note itself.
func applyCaseSideEffects(db *gorm.DB, kase *models.Case, input UpdateInput) error {
	changes := map[string]interface{}{}

	if input.NewStatus != "" && input.NewStatus != kase.Status {
		if !models.IsValidCaseStatus(input.NewStatus) {
			return errs.Validation("Invalid case status: %s", input.NewStatus)
		}
		changes["status"] = input.NewStatus
	}
	if input.HearingDate != nil {
		changes["next_hearing_date"] = input.HearingDate
	}
	if len(changes) == 0 {
		return nil
	}

	if err := db.Model(&models.Case{}).Where("id = ?", kase.ID).Updates(changes).Error; err != nil {
		return errs.Dependency("update case status", err)
	}
	return nil
}

// ListCaseUpdates returns a visible case's notes, newest first, with
// author profiles preloaded.
func ListCaseUpdates(db *gorm.DB, actor *authz.Actor, caseID string) ([]models.CaseUpdate, error) {
	if !authz.Can(actor, authz.ActionRead, authz.EntityCaseUpdate) {
		return nil, errs.ErrForbidden
	}
	if _, err := authz.VisibleCase(db, actor, caseID); err != nil {
		return nil, err
	}

	var updates []models.CaseUpdate
	err := db.Preload("Author").Where("case_id = ?", caseID).
		Order("created_at DESC").Find(&updates).Error
	if err != nil {
		return nil, errs.Dependency("list case updates", err)
	}
	return updates, nil
}
