package middleware

import (
	"errors"
	"log"
	"net/http"

	"advocate_desk_go/authz"
	"advocate_desk_go/config"
	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "advocate_desk_session"
	// ContextKeyActor is the context key for the authenticated actor
	ContextKeyActor = "actor"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

// RequireAuth validates the session cookie, resolves the actor through the
// profile directory and stores it in the request context. Every downstream
// authorization check receives this explicit actor; there is no ambient
// current-user state.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errs.UserMessage(errs.ErrUnauthenticated))
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, errs.UserMessage(errs.ErrUnauthenticated))
			}

			actor, err := services.ResolveActor(db.DB, session.UserID)
			if err != nil {
				if errors.Is(err, errs.ErrProfileMissing) {
					// Identity without a profile row: configuration fault,
					// not something a retry can fix.
					log.Printf("[ERROR] Identity %s has no profile row", session.UserID)
					clearSessionCookie(c)
					return echo.NewHTTPError(http.StatusInternalServerError, errs.UserMessage(err))
				}
				return echo.NewHTTPError(errs.HTTPStatus(err), errs.UserMessage(err))
			}

			c.Set(ContextKeyActor, actor)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RequireRole is middleware that requires specific roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := GetCurrentActor(c)
			if actor == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errs.UserMessage(errs.ErrUnauthenticated))
			}

			for _, role := range roles {
				if actor.Role == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, errs.UserMessage(errs.ErrForbidden))
		}
	}
}

// GetCurrentActor retrieves the authenticated actor from context
func GetCurrentActor(c echo.Context) *authz.Actor {
	actor, ok := c.Get(ContextKeyActor).(*authz.Actor)
	if !ok {
		return nil
	}
	return actor
}

// SetSessionCookie writes the session cookie on login
func SetSessionCookie(c echo.Context, token string, maxAge int) {
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie clears the session cookie
func clearSessionCookie(c echo.Context) {
	SetSessionCookie(c, "", -1)
}

// ClearSessionCookie clears the session cookie (logout)
func ClearSessionCookie(c echo.Context) {
	clearSessionCookie(c)
}
