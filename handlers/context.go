package handlers

import (
	"advocate_desk_go/config"

	"github.com/labstack/echo/v4"
)

// getConfig retrieves the application config placed in the request context
// by the server wiring.
func getConfig(c echo.Context) *config.Config {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok {
		return nil
	}
	return cfg
}
