package handlers

import (
	"net/http"

	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/middleware"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

// ListCaseAssociatesHandler returns the team assigned to a case the
// advocate owns.
func ListCaseAssociatesHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	edges, err := services.ListCaseAssociates(db.DB, actor, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, edges)
}

// AssignAssociateHandler adds an associate to a case's team
func AssignAssociateHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	var req struct {
		AssociateID string `json:"associate_id"`
	}
	if err := c.Bind(&req); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}
	if req.AssociateID == "" {
		return renderError(c, errs.Validation("Associate id is required"))
	}

	if err := services.AssignAssociate(db.DB, actor, c.Param("id"), req.AssociateID); err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"case_id":      c.Param("id"),
		"associate_id": req.AssociateID,
	})
}

// UnassignAssociateHandler removes an associate from a case's team
func UnassignAssociateHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	if err := services.UnassignAssociate(db.DB, actor, c.Param("id"), c.Param("associateId")); err != nil {
		return renderError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
