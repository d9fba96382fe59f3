package handlers

import (
	"errors"
	"net/http"
	"strings"

	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/middleware"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginHandler verifies credentials with the identity provider, resolves
// the actor and issues a session cookie.
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return renderError(c, errs.Validation("Email and password are required"))
	}

	userID, err := services.Identity.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthenticated) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "Invalid email or password",
			})
		}
		return renderError(c, err)
	}

	actor, err := services.ResolveActor(db.DB, userID)
	if err != nil {
		return renderError(c, err)
	}

	session, err := services.CreateSession(db.DB, userID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return renderError(c, errs.Dependency("create session", err))
	}

	middleware.SetSessionCookie(c, session.Token, int(services.DefaultSessionDuration.Seconds()))
	services.LogSecurityEvent("LOGIN", actor.ID, "Signed in as "+actor.Role)

	return c.JSON(http.StatusOK, map[string]string{
		"id":   actor.ID,
		"role": actor.Role,
	})
}

// SignupHandler provisions a new advocate account (tenant root) and signs
// it in. Associates and clients are never created here; they come through
// the advocate-only member-creation action.
func SignupHandler(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}

	profile, err := services.CreateAdvocate(c.Request().Context(), db.DB,
		req.FullName, req.Email, req.Phone, req.Password)
	if err != nil {
		return renderError(c, err)
	}

	session, err := services.CreateSession(db.DB, profile.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return renderError(c, errs.Dependency("create session", err))
	}
	middleware.SetSessionCookie(c, session.Token, int(services.DefaultSessionDuration.Seconds()))

	return c.JSON(http.StatusCreated, profile)
}

// LogoutHandler deletes the session and clears the cookie
func LogoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		_ = services.DeleteSession(db.DB, cookie.Value)
	}
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// MeHandler returns the authenticated actor's profile
func MeHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	profile, err := services.GetProfile(db.DB, actor, actor.ID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
