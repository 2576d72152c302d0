package echoweb

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core/catalog"
	"github.com/elimu-lms/elimu/core/editing"
)

type catalogAPI struct {
	opts *Options
}

func registerCatalogAPI(g *echo.Group, opts *Options) {
	api := catalogAPI{opts: opts}

	cg := g.Group("/categories")
	cg.GET("", api.categoryList)
	cg.POST("", api.categoryCreate)
	cg.PUT("/:id", api.categoryUpdate)
	cg.DELETE("/:id", api.categoryDelete)

	og := g.Group("/courses")
	og.GET("", api.courseList)
	og.POST("", api.courseCreate)
	og.PUT("/:id", api.courseUpdate)
	og.DELETE("/:id", api.courseDelete)
	og.POST("/:id/chapters", api.chapterCreate)
	og.POST("/:id/chapters/:chapterID/lessons", api.lessonCreate)
}

func registerPublicCatalogAPI(g *echo.Group, opts *Options) {
	api := catalogAPI{opts: opts}
	g.GET("", api.publicCourseList)
	g.GET("/:id", api.publicCourseRetrieve)
}

// screens mount per request: the list is refetched so every request
// reflects the source of record.

func (api *catalogAPI) categories(ctx echo.Context) (*catalog.CategoryScreen, error) {
	return catalog.MountCategories(
		ctx.Request().Context(), api.opts.Client, api.opts.Endpoints, api.opts.KV, contextSession(ctx).Token)
}

func (api *catalogAPI) courses(ctx echo.Context) (*catalog.CourseScreen, error) {
	return catalog.MountCourses(
		ctx.Request().Context(), api.opts.Client, api.opts.Endpoints, api.opts.KV, api.opts.Uploads, contextSession(ctx).Token)
}

// categories

func (api *catalogAPI) categoryList(ctx echo.Context) error {
	screen, err := api.categories(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"source":     screen.SourceName(),
		"categories": screen.Items(),
	})
}

func (api *catalogAPI) categoryCreate(ctx echo.Context) error {
	data := new(catalog.CategoryForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	screen, err := api.categories(ctx)
	if err != nil {
		return err
	}
	cat, err := screen.CreateCategory(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cat)
}

func (api *catalogAPI) categoryUpdate(ctx echo.Context) error {
	data := new(catalog.CategoryForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	screen, err := api.categories(ctx)
	if err != nil {
		return err
	}
	cat, err := screen.UpdateCategory(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cat)
}

func (api *catalogAPI) categoryDelete(ctx echo.Context) error {
	screen, err := api.categories(ctx)
	if err != nil {
		return err
	}
	if err = screen.DeleteCategory(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// courses

func (api *catalogAPI) courseList(ctx echo.Context) error {
	screen, err := api.courses(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"source":  screen.SourceName(),
		"courses": screen.Items(),
	})
}

func (api *catalogAPI) courseCreate(ctx echo.Context) error {
	form, err := bindCourseForm(ctx)
	if err != nil {
		return err
	}
	screen, err := api.courses(ctx)
	if err != nil {
		return err
	}
	course, err := screen.CreateCourse(ctx.Request().Context(), form)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, course)
}

func (api *catalogAPI) courseUpdate(ctx echo.Context) error {
	form, err := bindCourseForm(ctx)
	if err != nil {
		return err
	}
	screen, err := api.courses(ctx)
	if err != nil {
		return err
	}
	course, err := screen.UpdateCourse(ctx.Request().Context(), ctx.Param("id"), form)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *catalogAPI) courseDelete(ctx echo.Context) error {
	screen, err := api.courses(ctx)
	if err != nil {
		return err
	}
	if err = screen.DeleteCourse(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogAPI) chapterCreate(ctx echo.Context) error {
	data := new(catalog.ChapterForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	screen, err := api.courses(ctx)
	if err != nil {
		return err
	}
	err = screen.AddChapter(ctx.Request().Context(), ctx.Param("id"), *data)
	if errors.Is(err, editing.ErrNotFound) {
		return errHttpNotFound
	}
	if err != nil {
		return err
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *catalogAPI) lessonCreate(ctx echo.Context) error {
	data := new(catalog.LessonForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	screen, err := api.courses(ctx)
	if err != nil {
		return err
	}
	err = screen.AddLesson(ctx.Request().Context(), ctx.Param("id"), ctx.Param("chapterID"), *data)
	if errors.Is(err, editing.ErrNotFound) {
		return errHttpNotFound
	}
	if err != nil {
		return err
	}
	return ctx.NoContent(http.StatusCreated)
}

// public catalog

func (api *catalogAPI) publicCourseList(ctx echo.Context) error {
	courses, err := catalog.PublicCourses(ctx.Request().Context(), api.opts.Client, api.opts.Endpoints)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"courses": courses})
}

func (api *catalogAPI) publicCourseRetrieve(ctx echo.Context) error {
	course, err := catalog.PublicCourse(ctx.Request().Context(), api.opts.Client, api.opts.Endpoints, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"course": course})
}

// bindCourseForm accepts either a plain JSON body or a multipart form
// with a "payload" JSON field plus an "image" part and "video-<c>-<l>"
// parts for the chapter/lesson at those positions.
func bindCourseForm(ctx echo.Context) (catalog.CourseForm, error) {
	var form catalog.CourseForm

	mf, err := ctx.MultipartForm()
	if err != nil {
		// not multipart; fall back to JSON binding
		if err = ctx.Bind(&form); err != nil {
			return form, err
		}
		return form, nil
	}

	payload := mf.Value["payload"]
	if len(payload) == 0 {
		return form, echo.NewHTTPError(http.StatusBadRequest, "missing payload field")
	}
	if err = json.Unmarshal([]byte(payload[0]), &form); err != nil {
		return form, echo.NewHTTPError(http.StatusBadRequest, "malformed payload field").SetInternal(err)
	}

	if form.Image, err = formFile(mf, "image"); err != nil {
		return form, err
	}
	for ci := range form.Chapters {
		for li := range form.Chapters[ci].Lessons {
			video, err := formFile(mf, fmt.Sprintf("video-%d-%d", ci, li))
			if err != nil {
				return form, err
			}
			form.Chapters[ci].Lessons[li].Video = video
		}
	}
	return form, nil
}

func formFile(mf *multipart.Form, name string) (*catalog.File, error) {
	headers := mf.File[name]
	if len(headers) == 0 {
		return nil, nil
	}
	f, err := headers[0].Open()
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q part", name)
	}
	return &catalog.File{
		Name:        headers[0].Filename,
		ContentType: headers[0].Header.Get("Content-Type"),
		Body:        f,
	}, nil
}
