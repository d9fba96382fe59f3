package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 8
)

// IdentityProvider is the boundary with the authentication backend. The
// application only ever needs these four operations; everything else
// (cookies, sessions) is handled locally.
type IdentityProvider interface {
	// SignIn verifies credentials and returns the user id.
	SignIn(ctx context.Context, email, password string) (string, error)
	// CreateIdentity registers a new identity and returns its user id.
	CreateIdentity(ctx context.Context, email, password string) (string, error)
	// DeleteIdentity removes an identity. Used both for member removal and
	// as the compensating action when profile creation fails.
	DeleteIdentity(ctx context.Context, userID string) error
	// Exists reports whether the identity is still resolvable.
	Exists(ctx context.Context, userID string) (bool, error)
}

// Identity is the global identity provider instance
var Identity IdentityProvider

// InitializeIdentity sets up the identity provider backed by the local
// credentials table.
func InitializeIdentity(db *gorm.DB) {
	Identity = NewLocalIdentity(db)
	log.Println("Identity provider initialized (local credentials)")
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errs.Dependency("hash password", err)
	}
	return string(bytes), nil
}

// VerifyPassword verifies a password against a bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// LocalIdentity implements IdentityProvider on the credentials table.
type LocalIdentity struct {
	db *gorm.DB
}

// NewLocalIdentity creates a credentials-table identity provider
func NewLocalIdentity(db *gorm.DB) *LocalIdentity {
	return &LocalIdentity{db: db}
}

// SignIn verifies email and password against the stored bcrypt hash
func (l *LocalIdentity) SignIn(ctx context.Context, email, password string) (string, error) {
	var cred models.Credential
	err := l.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a hash comparison anyway so missing accounts are not
			// distinguishable by timing.
			VerifyPassword(dummyHash, password)
			return "", errs.ErrUnauthenticated
		}
		return "", errs.Dependency("sign in", err)
	}

	if !VerifyPassword(cred.PasswordHash, password) {
		return "", errs.ErrUnauthenticated
	}
	return cred.ID, nil
}

// CreateIdentity registers a new credential row and returns its id
func (l *LocalIdentity) CreateIdentity(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.Validation("Email is required")
	}
	if len(password) < MinPasswordLength {
		return "", errs.Validation("Password must be at least %d characters", MinPasswordLength)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	cred := &models.Credential{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := l.db.WithContext(ctx).Create(cred).Error; err != nil {
		return "", errs.Dependency("create identity", err)
	}
	return cred.ID, nil
}

// DeleteIdentity removes a credential row and all its sessions
func (l *LocalIdentity) DeleteIdentity(ctx context.Context, userID string) error {
	if err := l.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return errs.Dependency("delete identity sessions", err)
	}
	result := l.db.WithContext(ctx).Where("id = ?", userID).Delete(&models.Credential{})
	if result.Error != nil {
		return errs.Dependency("delete identity", result.Error)
	}
	return nil
}

// Exists reports whether a credential row is present for the user id
func (l *LocalIdentity) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&models.Credential{}).Where("id = ?", userID).Count(&count).Error
	if err != nil {
		return false, errs.Dependency("lookup identity", err)
	}
	return count > 0, nil
}

// dummyHash is a real bcrypt hash used only for timing mitigation on
// unknown emails.
var dummyHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte("timing-mitigation-only"), BcryptCost)
	if err != nil {
		return "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0CtGJxTmNhRT2uG5v7dT0W1R1om"
	}
	return string(h)
}()
