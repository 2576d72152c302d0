package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elimu-lms/elimu/core/enroll"
	"github.com/elimu-lms/elimu/core/quiz"
)

type enrollAPI struct {
	opts *Options
}

func registerEnrollAPI(g *echo.Group, opts *Options) {
	api := enrollAPI{opts: opts}

	g.GET("/dashboard", api.dashboard)
	g.GET("/enrollments", api.enrollmentList)
	g.GET("/certificates", api.certificateList)

	cg := g.Group("/courses/:id")
	cg.POST("/enroll", api.enroll)
	cg.GET("/progress", api.progress)
	cg.GET("/resume", api.resume)
	cg.POST("/lessons/:lessonID/complete", api.completeLesson)

	g.POST("/quizzes/:id/attempt", api.submitAttempt)
}

func (api *enrollAPI) service(ctx echo.Context) *enroll.Service {
	return enroll.NewService(api.opts.Client, api.opts.Endpoints, contextSession(ctx).Token)
}

func (api *enrollAPI) dashboard(ctx echo.Context) error {
	stats, err := api.service(ctx).EmployeeDashboard(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"stats": stats})
}

func (api *enrollAPI) enrollmentList(ctx echo.Context) error {
	mine, err := api.service(ctx).Mine(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"enrollments": mine})
}

func (api *enrollAPI) certificateList(ctx echo.Context) error {
	certs, err := api.service(ctx).Certificates(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"certificates": certs})
}

func (api *enrollAPI) enroll(ctx echo.Context) error {
	if err := api.service(ctx).Enroll(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *enrollAPI) progress(ctx echo.Context) error {
	progress, err := api.service(ctx).CourseProgress(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"progress": progress})
}

func (api *enrollAPI) resume(ctx echo.Context) error {
	resume, err := api.service(ctx).ResumePoint(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"resume": resume})
}

func (api *enrollAPI) completeLesson(ctx echo.Context) error {
	progress, err := api.service(ctx).CompleteLesson(ctx.Request().Context(), ctx.Param("id"), ctx.Param("lessonID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"progress": progress})
}

func (api *enrollAPI) submitAttempt(ctx echo.Context) error {
	data := new(struct {
		Answers []int `json:"answers"`
	})
	if err := ctx.Bind(data); err != nil {
		return err
	}
	screen, err := quiz.Mount(
		ctx.Request().Context(), api.opts.Client, api.opts.Endpoints, api.opts.KV, contextSession(ctx).Token)
	if err != nil {
		return err
	}
	result, err := screen.SubmitAttempt(ctx.Request().Context(), ctx.Param("id"), data.Answers)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"result": result})
}
