package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"advocate_desk_go/db"
	"advocate_desk_go/middleware"
	"advocate_desk_go/models"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB wires the package-level handle the handlers read, plus the
// identity and storage providers.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = testDB.AutoMigrate(
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

	db.DB = testDB
	services.InitializeIdentity(testDB)
	services.Storage = services.NewLocalStorage(t.TempDir())

	return testDB
}

func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// signupActor creates a full account (credential, profile, session) and
// returns the profile with a live session token.
func signupActor(t *testing.T, testDB *gorm.DB, email, role string, advocateID *string) (*models.Profile, string) {
	t.Helper()

	userID, err := services.Identity.CreateIdentity(context.Background(), email, "test-password-123")
	require.NoError(t, err)

	profile := &models.Profile{
		ID:         userID,
		FullName:   "Test " + email,
		Email:      email,
		Role:       role,
		AdvocateID: advocateID,
	}
	require.NoError(t, testDB.Create(profile).Error)

	session, err := services.CreateSession(testDB, userID, "127.0.0.1", "test")
	require.NoError(t, err)

	return profile, session.Token
}

// doJSON runs a handler through the auth middleware with a session cookie
// and a JSON body.
func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string, handler echo.HandlerFunc, pathParams ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(pathParams); i += 2 {
		names = append(names, pathParams[i])
		values = append(values, pathParams[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	wrapped := handler
	if token != "" {
		wrapped = func(c echo.Context) error {
			return middleware.RequireAuth()(handler)(c)
		}
	}
	if err := wrapped(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}
