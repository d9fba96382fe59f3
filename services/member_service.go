package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"advocate_desk_go/authz"
	"advocate_desk_go/config"
	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"gorm.io/gorm"
)

// MemberInput is the payload of the advocate-only member-creation action.
type MemberInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateMember provisions an associate or client account under the calling
// advocate: identity first, then the linked profile row. If the profile
// insert fails the just-created identity is deleted again before returning.
// An identity without a profile is an unusable orphan.
func CreateMember(ctx context.Context, db *gorm.DB, cfg *config.Config, actor *authz.Actor, input MemberInput) (*models.Profile, error) {
	if !actor.IsAdvocate() {
		return nil, errs.ErrForbidden
	}
	if !authz.Can(actor, authz.ActionCreate, authz.EntityProfile) {
		return nil, errs.ErrForbidden
	}

	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.FullName == "" || input.Email == "" || input.Password == "" {
		return nil, errs.Validation("Full name, email and password are required")
	}
	if !models.IsValidMemberRole(input.Role) {
		return nil, errs.Validation("Role must be associate or client")
	}

	userID, err := Identity.CreateIdentity(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:         userID,
		FullName:   input.FullName,
		Email:      input.Email,
		Phone:      input.Phone,
		Role:       input.Role,
		AdvocateID: &actor.ID,
	}

	if err := db.Create(profile).Error; err != nil {
		// Compensating action: never leave an identity with no profile.
		if delErr := Identity.DeleteIdentity(ctx, userID); delErr != nil {
			log.Printf("[ERROR] Failed to roll back identity %s after profile failure: %v", userID, delErr)
		}
		return nil, errs.Dependency("create member profile", err)
	}

	LogSecurityEvent("MEMBER_CREATED", actor.ID, "Created "+input.Role+": "+profile.ID)

	if cfg != nil {
		email := BuildMemberWelcomeEmail(cfg, profile.Email, profile.FullName, input.Role)
		SendEmailAsync(cfg, email)
	}

	return profile, nil
}

// DeleteMember removes a member account the calling advocate owns:
// sessions, profile, then identity. The ownership predicate is re-verified
// here, never trusted from the client.
func DeleteMember(ctx context.Context, db *gorm.DB, actor *authz.Actor, memberID string) error {
	if !actor.IsAdvocate() {
		return errs.ErrForbidden
	}
	if memberID == "" {
		return errs.Validation("Member id is required")
	}

	var member models.Profile
	err := db.First(&member, "id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return errs.Dependency("fetch member", err)
	}

	if member.AdvocateID == nil || *member.AdvocateID != actor.ID {
		return errs.ErrForbidden
	}
	if member.Role == models.RoleAdvocate {
		return errs.ErrForbidden
	}

	if err := DeleteAllUserSessions(db, member.ID); err != nil {
		return errs.Dependency("delete member sessions", err)
	}
	// Hard delete. A soft-deleted row would keep the email in the unique
	// index and block re-creating a member with that address.
	if err := db.Unscoped().Delete(&member).Error; err != nil {
		return errs.Dependency("delete member profile", err)
	}
	if err := Identity.DeleteIdentity(ctx, member.ID); err != nil {
		return err
	}

	LogSecurityEvent("MEMBER_DELETED", actor.ID, "Deleted member: "+member.ID)
	return nil
}

// CreateAdvocate provisions a tenant-root account at signup. Same
// orchestration and compensation as CreateMember, with no owning advocate.
func CreateAdvocate(ctx context.Context, db *gorm.DB, fullName, email, phone, password string) (*models.Profile, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" || email == "" || password == "" {
		return nil, errs.Validation("Full name, email and password are required")
	}

	userID, err := Identity.CreateIdentity(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:       userID,
		FullName: fullName,
		Email:    email,
		Phone:    phone,
		Role:     models.RoleAdvocate,
	}

	if err := db.Create(profile).Error; err != nil {
		if delErr := Identity.DeleteIdentity(ctx, userID); delErr != nil {
			log.Printf("[ERROR] Failed to roll back identity %s after profile failure: %v", userID, delErr)
		}
		return nil, errs.Dependency("create advocate profile", err)
	}

	LogSecurityEvent("ADVOCATE_SIGNUP", profile.ID, "Advocate account created")
	return profile, nil
}
