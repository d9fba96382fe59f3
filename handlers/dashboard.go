package handlers

import (
	"net/http"

	"advocate_desk_go/db"
	"advocate_desk_go/middleware"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler returns the actor's role-scoped summary counters
func DashboardHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	summary, err := services.BuildDashboard(db.DB, actor)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
