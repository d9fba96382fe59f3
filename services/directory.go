package services

import (
	"errors"

	"advocate_desk_go/authz"
	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"gorm.io/gorm"
)

// ResolveActor maps an identity's user id to its directory profile and
// returns the actor every authorization check receives. An identity with no
// profile row is a configuration fault, not a retryable condition.
func ResolveActor(db *gorm.DB, userID string) (*authz.Actor, error) {
	if userID == "" {
		return nil, errs.ErrUnauthenticated
	}

	var profile models.Profile
	err := db.First(&profile, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProfileMissing
		}
		return nil, errs.Dependency("resolve actor", err)
	}

	return authz.ActorFromProfile(&profile), nil
}

// GetProfile fetches a profile the actor may read: their own, or (for
// advocates) a member they own.
func GetProfile(db *gorm.DB, actor *authz.Actor, profileID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.First(&profile, "id = ?", profileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Dependency("fetch profile", err)
	}

	if !authz.CanAccessProfile(actor, &profile) {
		return nil, errs.ErrNotFound
	}
	return &profile, nil
}

// UpdateOwnProfile updates the actor's own contact fields. Role, email and
// ownership are never writable through this path.
func UpdateOwnProfile(db *gorm.DB, actor *authz.Actor, fullName, phone string) (*models.Profile, error) {
	if fullName == "" {
		return nil, errs.Validation("Full name is required")
	}

	var profile models.Profile
	if err := db.First(&profile, "id = ?", actor.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProfileMissing
		}
		return nil, errs.Dependency("fetch profile", err)
	}

	profile.FullName = fullName
	profile.Phone = phone
	if err := db.Save(&profile).Error; err != nil {
		return nil, errs.Dependency("update profile", err)
	}
	return &profile, nil
}

// ListMembers returns the advocate's member profiles, optionally filtered
// by role.
func ListMembers(db *gorm.DB, actor *authz.Actor, role string) ([]models.Profile, error) {
	if !actor.IsAdvocate() {
		return nil, errs.ErrForbidden
	}
	if role != "" && !models.IsValidMemberRole(role) {
		return nil, errs.Validation("Invalid role filter: %s", role)
	}

	query := db.Where("advocate_id = ?", actor.ID)
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var members []models.Profile
	if err := query.Order("full_name").Find(&members).Error; err != nil {
		return nil, errs.Dependency("list members", err)
	}
	return members, nil
}
