package handlers

import (
	"fmt"
	"net/http"

	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/middleware"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

// ListCaseDocumentsHandler returns the document metadata of a case
func ListCaseDocumentsHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	docs, err := services.ListCaseDocuments(db.DB, actor, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}

// UploadCaseDocumentHandler stores a standalone document on a case,
// outside the update flow.
func UploadCaseDocumentHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	file, err := c.FormFile("document")
	if err != nil {
		return renderError(c, errs.Validation("A document file is required"))
	}

	doc, err := services.UploadCaseDocument(c.Request().Context(), db.DB, actor, c.Param("id"), file)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

// DownloadCaseDocumentHandler streams a stored document to the caller
func DownloadCaseDocumentHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	doc, reader, contentType, err := services.OpenCaseDocument(
		c.Request().Context(), db.DB, actor, c.Param("id"), c.Param("documentId"))
	if err != nil {
		return renderError(c, err)
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, doc.Name))
	return c.Stream(http.StatusOK, contentType, reader)
}
