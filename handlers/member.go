package handlers

import (
	"net/http"

	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/middleware"
	"advocate_desk_go/models"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

// CreateMemberHandler is the privileged member-creation action. The route
// is advocate-only, and the caller's role is re-verified here anyway:
// client-side role claims are never trusted.
func CreateMemberHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)
	if actor == nil || actor.Role != models.RoleAdvocate {
		return renderError(c, errs.ErrForbidden)
	}

	var input services.MemberInput
	if err := c.Bind(&input); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}

	profile, err := services.CreateMember(c.Request().Context(), db.DB, getConfig(c), actor, input)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(http.StatusCreated, profile)
}

// DeleteMemberHandler is the privileged member-removal action. Ownership of
// the target member is re-verified server-side before anything is deleted.
func DeleteMemberHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)
	if actor == nil || actor.Role != models.RoleAdvocate {
		return renderError(c, errs.ErrForbidden)
	}

	var req struct {
		MemberID string `json:"member_id"`
	}
	if err := c.Bind(&req); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}

	if err := services.DeleteMember(c.Request().Context(), db.DB, actor, req.MemberID); err != nil {
		return renderError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMembersHandler returns the advocate's associates and clients,
// optionally filtered with ?role=.
func ListMembersHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	members, err := services.ListMembers(db.DB, actor, c.QueryParam("role"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}
