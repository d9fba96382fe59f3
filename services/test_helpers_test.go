package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"

	"advocate_desk_go/authz"
	"advocate_desk_go/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory database with the full schema and wires
// the identity provider to it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Credential{},
		&models.Session{},
		&models.Profile{},
		&models.Case{},
		&models.CaseAssociate{},
		&models.CaseUpdate{},
		&models.Payment{},
		&models.CaseDocument{},
	)
	require.NoError(t, err)

	InitializeIdentity(db)
	return db
}

// setupLocalStorage points the storage provider at a per-test temp dir.
func setupLocalStorage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	Storage = NewLocalStorage(dir)
	return dir
}

func seedAdvocate(t *testing.T, db *gorm.DB, email string) (*models.Profile, *authz.Actor) {
	t.Helper()
	p := &models.Profile{
		FullName: "Advocate " + email,
		Email:    email,
		Role:     models.RoleAdvocate,
	}
	require.NoError(t, db.Create(p).Error)
	return p, authz.ActorFromProfile(p)
}

func seedMember(t *testing.T, db *gorm.DB, advocateID, email, role string) (*models.Profile, *authz.Actor) {
	t.Helper()
	p := &models.Profile{
		FullName:   "Member " + email,
		Email:      email,
		Role:       role,
		AdvocateID: &advocateID,
	}
	require.NoError(t, db.Create(p).Error)
	return p, authz.ActorFromProfile(p)
}

func seedCase(t *testing.T, db *gorm.DB, advocateID string, clientID *string) *models.Case {
	t.Helper()
	k := &models.Case{
		AdvocateID: advocateID,
		ClientID:   clientID,
		Title:      "Seeded case",
		Status:     models.CaseStatusOpen,
	}
	require.NoError(t, db.Create(k).Error)
	return k
}

func seedAssignment(t *testing.T, db *gorm.DB, caseID, associateID string) {
	t.Helper()
	require.NoError(t, db.Create(&models.CaseAssociate{CaseID: caseID, AssociateID: associateID}).Error)
}

// createMockFileHeader builds a real multipart.FileHeader by round-tripping
// through a multipart writer, the same shape handlers receive.
func createMockFileHeader(t *testing.T, filename, content, contentType string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="document"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(int64(body.Len()) + 1024)
	require.NoError(t, err)

	files := form.File["document"]
	require.Len(t, files, 1)
	return files[0]
}
