package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elimu-lms/elimu/core/guard"
	"github.com/elimu-lms/elimu/core/session"
)

const sessionContextKey = "app.session"

// guardMiddleware wraps a protected group. Rejected requests never see
// the handler; they are redirected per the guard's resolution.
func guardMiddleware(sessions *session.Store, requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess := sessions.Current()
			res := guard.Resolve(sess, requiredRole)
			if !res.Authorized() {
				return ctx.Redirect(http.StatusFound, res.Redirect)
			}
			ctx.Set(sessionContextKey, sess)
			return next(ctx)
		}
	}
}

// contextSession returns the session stashed by guardMiddleware, or an
// empty session outside a guarded group.
func contextSession(ctx echo.Context) session.Session {
	if sess, ok := ctx.Get(sessionContextKey).(session.Session); ok {
		return sess
	}
	return session.Session{}
}
