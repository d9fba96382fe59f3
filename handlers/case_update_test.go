package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"advocate_desk_go/middleware"
	"advocate_desk_go/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doMultipart posts a multipart form through the auth middleware.
func doMultipart(t *testing.T, e *echo.Echo, path, token string, fields map[string]string, fileField, filename, fileContent string, handler echo.HandlerFunc, pathParams ...string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
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

	if err := middleware.RequireAuth()(handler)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestCreateCaseUpdateHandler(t *testing.T) {
	testDB := setupTestDB(t)
	e := setupEcho()
	advocate, advToken := signupActor(t, testDB, "adv@example.com", models.RoleAdvocate, nil)
	client, clientToken := signupActor(t, testDB, "cli@example.com", models.RoleClient, &advocate.ID)
	kase := seedHandlerCase(t, testDB, advocate.ID, &client.ID)

	t.Run("note with status change", func(t *testing.T) {
		rec := doMultipart(t, e, "/api/cases/"+kase.ID+"/updates", advToken,
			map[string]string{
				"content": "Hearing concluded",
				"status":  models.CaseStatusClosed,
			}, "", "", "", CreateCaseUpdateHandler, "id", kase.ID)

		require.Equal(t, http.StatusCreated, rec.Code)

		var reloaded models.Case
		require.NoError(t, testDB.First(&reloaded, "id = ?", kase.ID).Error)
		assert.Equal(t, models.CaseStatusClosed, reloaded.Status)
	})

	t.Run("note with document attachment", func(t *testing.T) {
		rec := doMultipart(t, e, "/api/cases/"+kase.ID+"/updates", advToken,
			map[string]string{"content": "Filing the order"},
			"document", "order.pdf", "%PDF-1.4 order", CreateCaseUpdateHandler, "id", kase.ID)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Document *models.CaseDocument `json:"document"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Document)
		assert.Equal(t, "order.pdf", resp.Document.Name)
	})

	t.Run("invalid status still saves the note", func(t *testing.T) {
		var before int64
		require.NoError(t, testDB.Model(&models.CaseUpdate{}).Where("case_id = ?", kase.ID).Count(&before).Error)

		rec := doMultipart(t, e, "/api/cases/"+kase.ID+"/updates", advToken,
			map[string]string{
				"content": "Note with a bad status",
				"status":  "vaporized",
			}, "", "", "", CreateCaseUpdateHandler, "id", kase.ID)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error  string             `json:"error"`
			Update *models.CaseUpdate `json:"update"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
		require.NotNil(t, resp.Update, "response must carry the note that did persist")

		var after int64
		require.NoError(t, testDB.Model(&models.CaseUpdate{}).Where("case_id = ?", kase.ID).Count(&after).Error)
		assert.Equal(t, before+1, after)
	})

	t.Run("malformed hearing date", func(t *testing.T) {
		rec := doMultipart(t, e, "/api/cases/"+kase.ID+"/updates", advToken,
			map[string]string{
				"content":      "Note",
				"hearing_date": "15/10/2026",
			}, "", "", "", CreateCaseUpdateHandler, "id", kase.ID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("client cannot post updates", func(t *testing.T) {
		rec := doMultipart(t, e, "/api/cases/"+kase.ID+"/updates", clientToken,
			map[string]string{"content": "Any news?"}, "", "", "", CreateCaseUpdateHandler, "id", kase.ID)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestListCaseUpdatesHandler(t *testing.T) {
	testDB := setupTestDB(t)
	e := setupEcho()
	advocate, advToken := signupActor(t, testDB, "adv@example.com", models.RoleAdvocate, nil)
	client, clientToken := signupActor(t, testDB, "cli@example.com", models.RoleClient, &advocate.ID)
	kase := seedHandlerCase(t, testDB, advocate.ID, &client.ID)

	rec := doMultipart(t, e, "/api/cases/"+kase.ID+"/updates", advToken,
		map[string]string{"content": "First note"}, "", "", "", CreateCaseUpdateHandler, "id", kase.ID)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("client reads the timeline", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/api/cases/"+kase.ID+"/updates", clientToken, "", ListCaseUpdatesHandler, "id", kase.ID)
		require.Equal(t, http.StatusOK, rec.Code)

		var updates []models.CaseUpdate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updates))
		assert.Len(t, updates, 1)
	})
}
