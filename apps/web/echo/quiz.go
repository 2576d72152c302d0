package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core/editing"
	"github.com/elimu-lms/elimu/core/quiz"
)

type quizAPI struct {
	opts *Options
}

func registerQuizAPI(g *echo.Group, opts *Options) {
	api := quizAPI{opts: opts}

	qg := g.Group("/quizzes")
	qg.GET("", api.quizList)
	qg.POST("", api.quizCreate)
	qg.PUT("/:id", api.quizUpdate)
	qg.DELETE("/:id", api.quizDelete)
	qg.PUT("/:id/activate", api.quizActivate)
	qg.PUT("/:id/deactivate", api.quizDeactivate)
}

func (api *quizAPI) screen(ctx echo.Context) (*quiz.Screen, error) {
	return quiz.Mount(
		ctx.Request().Context(), api.opts.Client, api.opts.Endpoints, api.opts.KV, contextSession(ctx).Token)
}

func (api *quizAPI) quizList(ctx echo.Context) error {
	screen, err := api.screen(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"source":  screen.SourceName(),
		"quizzes": screen.Items(),
	})
}

func (api *quizAPI) quizCreate(ctx echo.Context) error {
	data := new(quiz.QuizForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	screen, err := api.screen(ctx)
	if err != nil {
		return err
	}
	q, err := screen.CreateQuiz(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *quizAPI) quizUpdate(ctx echo.Context) error {
	data := new(quiz.QuizForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	screen, err := api.screen(ctx)
	if err != nil {
		return err
	}
	q, err := screen.UpdateQuiz(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *quizAPI) quizDelete(ctx echo.Context) error {
	screen, err := api.screen(ctx)
	if err != nil {
		return err
	}
	if err = screen.DeleteQuiz(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *quizAPI) quizActivate(ctx echo.Context) error {
	return api.setActive(ctx, true)
}

func (api *quizAPI) quizDeactivate(ctx echo.Context) error {
	return api.setActive(ctx, false)
}

func (api *quizAPI) setActive(ctx echo.Context, active bool) error {
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
