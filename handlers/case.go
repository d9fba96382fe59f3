package handlers

import (
	"net/http"

	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/middleware"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

// ListCasesHandler returns the cases visible to the actor, optionally
// filtered with ?status=. The visibility predicate runs inside the store
// query; unauthorized rows are never fetched.
func ListCasesHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	cases, err := services.ListVisibleCases(db.DB, actor, c.QueryParam("status"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, cases)
}

// GetCaseHandler returns one case within the actor's visibility
func GetCaseHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	kase, err := services.GetVisibleCase(db.DB, actor, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, kase)
}

// CreateCaseHandler creates a case owned by the calling advocate
func CreateCaseHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	var input services.CaseInput
	if err := c.Bind(&input); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}

	kase, err := services.CreateCase(db.DB, actor, input)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, kase)
}

// UpdateCaseHandler edits a case the calling advocate owns
func UpdateCaseHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	var input services.CaseInput
	if err := c.Bind(&input); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}

	kase, err := services.UpdateCase(db.DB, actor, c.Param("id"), input)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, kase)
}

// DeleteCaseHandler removes a case the calling advocate owns
func DeleteCaseHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	if err := services.DeleteCase(db.DB, actor, c.Param("id")); err != nil {
		return renderError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
