// Package echoweb serves the front-end's view models over HTTP: auth,
// the admin screens, the employee screens and the public catalog. It is
// a thin wrapper around the core packages; rendering is someone else's
// problem.
package echoweb

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/elimu-lms/elimu/core"
	"github.com/elimu-lms/elimu/core/session"
	"github.com/elimu-lms/elimu/services/api"
	"github.com/elimu-lms/elimu/storage/kv"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger
		Sessions       *session.Store
		Client         *api.Client
		Endpoints      api.Endpoints
		KV             *kv.Store
		Uploads        core.ObjectStore
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", s.home)

	registerAuthAPI(s.app.Group(""), s.opts)

	admin := s.app.Group("/admin", guardMiddleware(s.opts.Sessions, session.RoleAdmin))
	registerCatalogAPI(admin, s.opts)
	registerQuizAPI(admin, s.opts)
	registerEmployeeAPI(admin, s.opts)

	employee := s.app.Group("/employee", guardMiddleware(s.opts.Sessions, session.RoleEmployee))
	registerEnrollAPI(employee, s.opts)

	registerPublicCatalogAPI(s.app.Group("/courses"), s.opts)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

// home is the entry view model: who is logged in, if anyone.
func (s *server) home(ctx echo.Context) error {
	sess := s.opts.Sessions.Current()
	vm := echo.Map{
		"app":           core.Conf.AppName,
		"authenticated": sess.Authenticated(),
	}
	if sess.Authenticated() {
		vm["user"] = sess.User
		vm["home"] = "/" + sess.User.Role + "/dashboard"
	}
	return ctx.JSON(http.StatusOK, vm)
}
