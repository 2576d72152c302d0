package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core/session"
)

type authAPI struct {
	opts *Options
}

func registerAuthAPI(g *echo.Group, opts *Options) {
	api := authAPI{opts: opts}

	g.POST("/login", api.login)
	g.POST("/logout", api.logout)
	g.GET("/profile", api.profile)
	g.PUT("/profile/password", api.changePassword)
}

func (api *authAPI) login(ctx echo.Context) error {
	data := new(session.LoginForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	usr, err := api.opts.Sessions.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if errors.Is(err, session.ErrLoginFailed) {
			return errAuthenticationFailed
		}
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"user": usr,
		"home": "/" + usr.Role + "/dashboard",
	})
}

func (api *authAPI) logout(ctx echo.Context) error {
	if err := api.opts.Sessions.Logout(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"redirect": "/"})
}

func (api *authAPI) profile(ctx echo.Context) error {
	usr, err := api.opts.Sessions.Profile(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"user": usr})
}

func (api *authAPI) changePassword(ctx echo.Context) error {
	data := new(session.ChangePasswordForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.opts.Sessions.ChangePassword(ctx.Request().Context(), data.OldPassword, data.NewPassword); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
