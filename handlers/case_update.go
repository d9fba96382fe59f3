package handlers

import (
	"net/http"
	"time"

	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/middleware"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

// ListCaseUpdatesHandler returns a visible case's progress notes
func ListCaseUpdatesHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	updates, err := services.ListCaseUpdates(db.DB, actor, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, updates)
}

// CreateCaseUpdateHandler posts a progress note with its optional side
// effects: status change, hearing date, document attachment. Sent as a
// multipart form so the attachment rides along. A failed side effect is
// reported together with the note that did persist.
func CreateCaseUpdateHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	input := services.UpdateInput{
		Content:   c.FormValue("content"),
		NewStatus: c.FormValue("status"),
	}

	if raw := c.FormValue("hearing_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return renderError(c, errs.Validation("Hearing date must be YYYY-MM-DD"))
		}
		input.HearingDate = &parsed
	}

	if file, err := c.FormFile("document"); err == nil {
		input.File = file
	}

	result, err := services.SaveCaseUpdate(c.Request().Context(), db.DB, actor, c.Param("id"), input)
	if err != nil {
		if result != nil && result.Update != nil {
			// The note is saved; only a side effect failed.
			return c.JSON(errs.HTTPStatus(err), map[string]interface{}{
				"error":  errs.UserMessage(err),
				"update": result.Update,
			})
		}
		return renderError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}
