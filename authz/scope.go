package authz

import (
	"errors"

	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"gorm.io/gorm"
)

// AssignedCaseIDs resolves the set of case ids the associate is assigned to
// via the membership edge. Callers short-circuit on an empty set instead of
// issuing a `id IN ()` query against the case table.
func AssignedCaseIDs(db *gorm.DB, associateID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.CaseAssociate{}).
		Where("associate_id = ?", associateID).
		Pluck("case_id", &ids).Error
	if err != nil {
		return nil, errs.Dependency("list case assignments", err)
	}
	return ids, nil
}

// ScopeCases narrows a case query to the rows visible to the actor. The
// predicate is pushed into the store as a WHERE clause; rows are never
// fetched and filtered in application memory.
//
// For associates the membership edge is resolved first; an empty set yields
// a query that matches nothing.
func ScopeCases(db *gorm.DB, actor *Actor) (*gorm.DB, error) {
	switch actor.Role {
	case models.RoleAdvocate:
		return db.Where("advocate_id = ?", actor.ID), nil
	case models.RoleClient:
		return db.Where("client_id = ?", actor.ID), nil
	case models.RoleAssociate:
		// The caller's query chain may already target the case table, so
		// the membership lookup runs on a fresh statement to keep it from
		// clobbering that chain.
		ids, err := AssignedCaseIDs(db.Session(&gorm.Session{NewDB: true}), actor.ID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return db.Where("1 = 0"), nil
		}
		return db.Where("id IN ?", ids), nil
	}
	return db.Where("1 = 0"), nil
}

// VisibleCase fetches a case the actor may read. Rows outside the actor's
// visibility read as not found, whether or not they exist.
func VisibleCase(db *gorm.DB, actor *Actor, caseID string) (*models.Case, error) {
	if !Can(actor, ActionRead, EntityCase) {
		return nil, errs.ErrNotFound
	}

	scoped, err := ScopeCases(db.Model(&models.Case{}), actor)
	if err != nil {
		return nil, err
	}

	var kase models.Case
	if err := scoped.First(&kase, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Dependency("fetch case", err)
	}
	return &kase, nil
}

// OwnedCase fetches a case the actor owns, for mutations reserved to the
// owning advocate. Invisible rows read as not found.
func OwnedCase(db *gorm.DB, actor *Actor, caseID string) (*models.Case, error) {
	if actor.Role != models.RoleAdvocate {
		return nil, errs.ErrForbidden
	}

	var kase models.Case
	err := db.Where("advocate_id = ?", actor.ID).First(&kase, "id = ?", caseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Dependency("fetch case", err)
	}
	return &kase, nil
}

// ContributableCase fetches a case the actor may post updates or documents
// to: the owning advocate, or an associate assigned through the membership
// edge. Clients can see their case but never contribute to it.
func ContributableCase(db *gorm.DB, actor *Actor, caseID string) (*models.Case, error) {
	switch actor.Role {
	case models.RoleAdvocate:
		return OwnedCase(db, actor, caseID)

	case models.RoleAssociate:
		var edge models.CaseAssociate
		err := db.Where("case_id = ? AND associate_id = ?", caseID, actor.ID).First(&edge).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.ErrNotFound
			}
			return nil, errs.Dependency("fetch case assignment", err)
		}

		var kase models.Case
		if err := db.First(&kase, "id = ?", caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.ErrNotFound
			}
			return nil, errs.Dependency("fetch case", err)
		}
		return &kase, nil

	case models.RoleClient:
		return nil, errs.ErrForbidden
	}
	return nil, errs.ErrForbidden
}
