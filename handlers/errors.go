package handlers

import (
	"log"

	"advocate_desk_go/errs"

	"github.com/labstack/echo/v4"
)

// renderError maps a taxonomy error to its JSON response. Dependency detail
// is logged server-side and replaced with a generic retryable message;
// every other class surfaces its one-line user message.
func renderError(c echo.Context, err error) error {
	if errs.IsDependency(err) {
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(errs.HTTPStatus(err), map[string]string{
		"error": errs.UserMessage(err),
	})
}
