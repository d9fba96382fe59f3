package handlers

import (
	"net/http"

	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/middleware"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

// ExportCasesHandler streams the advocate's case book as an XLSX workbook
func ExportCasesHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	book, err := services.BuildCaseBook(db.DB, actor)
	if err != nil {
		return renderError(c, err)
	}
	defer book.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+services.CaseBookFilename(actor)+`"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	if err := book.Write(c.Response().Writer); err != nil {
		return errs.Dependency("write export", err)
	}
	return nil
}
