package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core/editing"
	"github.com/elimu-lms/elimu/core/employee"
	"github.com/elimu-lms/elimu/core/enroll"
)

type employeeAPI struct {
	opts *Options
}

func registerEmployeeAPI(g *echo.Group, opts *Options) {
	api := employeeAPI{opts: opts}

	eg := g.Group("/employees")
	eg.GET("", api.employeeList)
	eg.POST("", api.employeeCreate)
	eg.PUT("/:id", api.employeeUpdate)
	eg.PUT("/:id/activate", api.employeeActivate)
	eg.PUT("/:id/deactivate", api.employeeDeactivate)

	g.GET("/dashboard", api.dashboard)
}

func (api *employeeAPI) screen(ctx echo.Context) (*employee.Screen, error) {
	return employee.Mount(
		ctx.Request().Context(), api.opts.Client, api.opts.Endpoints, api.opts.KV, contextSession(ctx).Token)
}

func (api *employeeAPI) employeeList(ctx echo.Context) error {
	screen, err := api.screen(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"source":    screen.SourceName(),
		"employees": screen.Items(),
	})
}

func (api *employeeAPI) employeeCreate(ctx echo.Context) error {
	data := new(employee.Form)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	screen, err := api.screen(ctx)
	if err != nil {
		return err
	}
	emp, err := screen.CreateEmployee(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, emp)
}

func (api *employeeAPI) employeeUpdate(ctx echo.Context) error {
	data := new(employee.Form)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	screen, err := api.screen(ctx)
	if err != nil {
		return err
	}
	emp, err := screen.UpdateEmployee(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, emp)
}

func (api *employeeAPI) employeeActivate(ctx echo.Context) error {
	return api.setActive(ctx, true)
}

func (api *employeeAPI) employeeDeactivate(ctx echo.Context) error {
	return api.setActive(ctx, false)
}

func (api *employeeAPI) setActive(ctx echo.Context, active bool) error {
	screen, err := api.screen(ctx)
	if err != nil {
		return err
	}
	if active {
		err = screen.Activate(ctx.Request().Context(), ctx.Param("id"))
	} else {
		err = screen.Deactivate(ctx.Request().Context(), ctx.Param("id"))
	}
	if errors.Is(err, editing.ErrNotFound) {
		return errHttpNotFound
	}
	if err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// dashboard is the admin dashboard view model.
func (api *employeeAPI) dashboard(ctx echo.Context) error {
	svc := enroll.NewService(api.opts.Client, api.opts.Endpoints, contextSession(ctx).Token)
	stats, err := svc.AdminDashboard(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"stats": stats})
}
