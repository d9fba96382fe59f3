package handlers

import (
	"net/http"

	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/middleware"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

// GetProfileHandler returns one profile: the actor's own, or a member of
// the calling advocate. Anything else reads as not found.
func GetProfileHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	profile, err := services.GetProfile(db.DB, actor, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler updates the actor's own contact fields. Only
// full_name and phone are writable; role, email and ownership are not.
func UpdateProfileHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	var req struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}

	profile, err := services.UpdateOwnProfile(db.DB, actor, req.FullName, req.Phone)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
