package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"advocate_desk_go/db"
	"advocate_desk_go/models"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = testDB.AutoMigrate(&models.Credential{}, &models.Session{}, &models.Profile{})
	require.NoError(t, err)

	// Middleware reads the package-level handle
	db.DB = testDB
	return testDB
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuth(t *testing.T) {
	testDB := setupTestDB(t)
	e := echo.New()

	profile := models.Profile{
		FullName: "Test Advocate",
		Email:    "adv@example.com",
		Role:     models.RoleAdvocate,
	}
	require.NoError(t, testDB.Create(&profile).Error)

	session, err := services.CreateSession(testDB, profile.ID, "127.0.0.1", "test-agent")
	require.NoError(t, err)

	handler := RequireAuth()(okHandler)

	t.Run("valid session resolves the actor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		innerChecked := false
		err := RequireAuth()(func(c echo.Context) error {
			actor := GetCurrentActor(c)
			require.NotNil(t, actor)
			assert.Equal(t, profile.ID, actor.ID)
			assert.Equal(t, models.RoleAdvocate, actor.Role)
			innerChecked = true
			return c.NoContent(http.StatusOK)
		})(c)

		assert.NoError(t, err)
		assert.True(t, innerChecked)
	})

	t.Run("missing cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("identity without profile is a server error", func(t *testing.T) {
		orphan, err := services.CreateSession(testDB, "no-profile-here", "127.0.0.1", "test-agent")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: orphan.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		herr := handler(c)
		httpErr, ok := herr.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})
}

func TestRequireRole(t *testing.T) {
	testDB := setupTestDB(t)
	e := echo.New()

	advocate := models.Profile{FullName: "A", Email: "a@example.com", Role: models.RoleAdvocate}
	require.NoError(t, testDB.Create(&advocate).Error)
	client := models.Profile{FullName: "C", Email: "c@example.com", Role: models.RoleClient, AdvocateID: &advocate.ID}
	require.NoError(t, testDB.Create(&client).Error)

	callAs := func(profileID string, handler echo.HandlerFunc) error {
		session, err := services.CreateSession(testDB, profileID, "127.0.0.1", "test-agent")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		return RequireAuth()(RequireRole(models.RoleAdvocate)(handler))(c)
	}

	t.Run("matching role passes", func(t *testing.T) {
		assert.NoError(t, callAs(advocate.ID, okHandler))
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		err := callAs(client.ID, okHandler)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("no actor in context is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireRole(models.RoleAdvocate)(okHandler)(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
