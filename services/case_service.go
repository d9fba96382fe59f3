package services

import (
	"errors"
	"time"

	"advocate_desk_go/authz"
	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"gorm.io/gorm"
)

// CaseInput is the payload for case create and edit.
type CaseInput struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	CaseNumber      *string    `json:"case_number"`
	Court           *string    `json:"court"`
	ClientID        *string    `json:"client_id"`
	NextHearingDate *time.Time `json:"next_hearing_date"`
}

// ListVisibleCases returns the cases the actor may see, newest activity
// first, optionally filtered by status. Associate visibility resolves the
// membership edge first and short-circuits to an empty result when the
// associate has no assignments.
func ListVisibleCases(db *gorm.DB, actor *authz.Actor, status string) ([]models.Case, error) {
	if !authz.Can(actor, authz.ActionRead, authz.EntityCase) {
		return nil, errs.ErrForbidden
	}
	if status != "" && !models.IsValidCaseStatus(status) {
		return nil, errs.Validation("Invalid status filter: %s", status)
	}

	if actor.Role == models.RoleAssociate {
		ids, err := authz.AssignedCaseIDs(db, actor.ID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []models.Case{}, nil
		}
		query := db.Preload("Client").Where("id IN ?", ids)
		if status != "" {
			query = query.Where("status = ?", status)
		}
		var cases []models.Case
		if err := query.Order("updated_at DESC").Find(&cases).Error; err != nil {
			return nil, errs.Dependency("list cases", err)
		}
		return cases, nil
	}

	scoped, err := authz.ScopeCases(db.Preload("Client"), actor)
	if err != nil {
		return nil, err
	}
	if status != "" {
		scoped = scoped.Where("status = ?", status)
	}

	var cases []models.Case
	if err := scoped.Order("updated_at DESC").Find(&cases).Error; err != nil {
		return nil, errs.Dependency("list cases", err)
	}
	return cases, nil
}

// GetVisibleCase fetches one case within the actor's visibility, with the
// client profile preloaded.
func GetVisibleCase(db *gorm.DB, actor *authz.Actor, caseID string) (*models.Case, error) {
	kase, err := authz.VisibleCase(db, actor, caseID)
	if err != nil {
		return nil, err
	}
	if kase.ClientID != nil {
		// Two-step fetch-and-map kept as an intentional denormalization
		// step; the client row may be gone while the case persists.
		var client models.Profile
		if err := db.First(&client, "id = ?", *kase.ClientID).Error; err == nil {
			kase.Client = &client
		}
	}
	return kase, nil
}

// CreateCase creates a case owned by the calling advocate. The client link,
// if given, must reference a client profile of the same advocate.
func CreateCase(db *gorm.DB, actor *authz.Actor, input CaseInput) (*models.Case, error) {
	if !actor.IsAdvocate() || !authz.Can(actor, authz.ActionCreate, authz.EntityCase) {
		return nil, errs.ErrForbidden
	}
	if input.Title == "" {
		return nil, errs.Validation("Title is required")
	}
	if input.Status == "" {
		input.Status = models.CaseStatusOpen
	}
	if !models.IsValidCaseStatus(input.Status) {
		return nil, errs.Validation("Invalid case status: %s", input.Status)
	}
	if err := validateClientLink(db, actor, input.ClientID); err != nil {
		return nil, err
	}

	kase := &models.Case{
		AdvocateID:      actor.ID,
		ClientID:        input.ClientID,
		Title:           input.Title,
		Description:     input.Description,
		Status:          input.Status,
		CaseNumber:      input.CaseNumber,
		Court:           input.Court,
		NextHearingDate: input.NextHearingDate,
	}
	if err := db.Create(kase).Error; err != nil {
		return nil, errs.Dependency("create case", err)
	}
	return kase, nil
}

// UpdateCase edits a case the calling advocate owns.
func UpdateCase(db *gorm.DB, actor *authz.Actor, caseID string, input CaseInput) (*models.Case, error) {
	kase, err := authz.OwnedCase(db, actor, caseID)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, errs.Validation("Title is required")
	}
	if input.Status != "" && !models.IsValidCaseStatus(input.Status) {
		return nil, errs.Validation("Invalid case status: %s", input.Status)
	}
	if err := validateClientLink(db, actor, input.ClientID); err != nil {
		return nil, err
	}

	kase.Title = input.Title
	kase.Description = input.Description
	kase.CaseNumber = input.CaseNumber
	kase.Court = input.Court
	kase.ClientID = input.ClientID
	kase.NextHearingDate = input.NextHearingDate
	if input.Status != "" {
		kase.Status = input.Status
	}

	if err := db.Save(kase).Error; err != nil {
		return nil, errs.Dependency("update case", err)
	}
	return kase, nil
}

// DeleteCase removes a case the calling advocate owns.
func DeleteCase(db *gorm.DB, actor *authz.Actor, caseID string) error {
	kase, err := authz.OwnedCase(db, actor, caseID)
	if err != nil {
		return err
	}
	if err := db.Delete(kase).Error; err != nil {
		return errs.Dependency("delete case", err)
	}
	return nil
}

// AssignAssociate adds a membership edge between a case the advocate owns
// and one of their associate profiles.
func AssignAssociate(db *gorm.DB, actor *authz.Actor, caseID, associateID string) error {
	if !authz.Can(actor, authz.ActionCreate, authz.EntityCaseAssociate) {
		return errs.ErrForbidden
	}
	if _, err := authz.OwnedCase(db, actor, caseID); err != nil {
		return err
	}

	var associate models.Profile
	err := db.Where("advocate_id = ? AND role = ?", actor.ID, models.RoleAssociate).
		First(&associate, "id = ?", associateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Validation("Associate not found in your team")
		}
		return errs.Dependency("fetch associate", err)
	}

	edge := models.CaseAssociate{CaseID: caseID, AssociateID: associateID}
	if err := db.FirstOrCreate(&edge, models.CaseAssociate{CaseID: caseID, AssociateID: associateID}).Error; err != nil {
		return errs.Dependency("assign associate", err)
	}
	return nil
}

// UnassignAssociate removes a membership edge on a case the advocate owns.
func UnassignAssociate(db *gorm.DB, actor *authz.Actor, caseID, associateID string) error {
	if !authz.Can(actor, authz.ActionDelete, authz.EntityCaseAssociate) {
		return errs.ErrForbidden
	}
	if _, err := authz.OwnedCase(db, actor, caseID); err != nil {
		return err
	}

	result := db.Where("case_id = ? AND associate_id = ?", caseID, associateID).
		Delete(&models.CaseAssociate{})
	if result.Error != nil {
		return errs.Dependency("unassign associate", result.Error)
	}
	return nil
}

// ListCaseAssociates returns the membership edges of a case the advocate
// owns, with associate profiles preloaded.
func ListCaseAssociates(db *gorm.DB, actor *authz.Actor, caseID string) ([]models.CaseAssociate, error) {
	if _, err := authz.OwnedCase(db, actor, caseID); err != nil {
		return nil, err
	}

	var edges []models.CaseAssociate
	err := db.Preload("Associate").Where("case_id = ?", caseID).
		Order("added_at").Find(&edges).Error
	if err != nil {
		return nil, errs.Dependency("list case associates", err)
	}
	return edges, nil
}

// validateClientLink checks client_id references a client profile owned by
// the advocate. A nil link is always valid.
func validateClientLink(db *gorm.DB, actor *authz.Actor, clientID *string) error {
	if clientID == nil || *clientID == "" {
		return nil
	}
	var client models.Profile
	err := db.Where("advocate_id = ? AND role = ?", actor.ID, models.RoleClient).
		First(&client, "id = ?", *clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Validation("Client not found in your client list")
		}
		return errs.Dependency("fetch client", err)
	}
	return nil
}
