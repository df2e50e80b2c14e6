package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/bgugger/atelier/core"
	"github.com/bgugger/atelier/core/content"
	"github.com/bgugger/atelier/core/user"
	uploadsvc "github.com/bgugger/atelier/services/uploads"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		ContentSvc *content.Service
		UserSvc    *user.Service
		Uploads    uploadsvc.Store
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps      ServerDeps
		app       *echo.Echo
		jwtConfig middleware.JWTConfig
		errs      chan error
		shutdown  chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:      deps,
		app:       echo.New(),
		jwtConfig: newJWTConfig(deps.Conf),
		errs:      make(chan error, 1),
		shutdown:  make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if conf.Uploads.MaxSize > 0 {
		s.app.Use(middleware.BodyLimit(strconv.FormatInt(conf.Uploads.MaxSize, 10)))
	}
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = s.appHTTPErrorHandler
	s.app.HideBanner = true
	s.app.Debug = conf.Debug

	// uploaded images; paths handed out by the inline editor are relative to this prefix
	s.app.Static("/uploads", conf.Uploads.Dir)

	s.registerPublicRoutes()
	s.registerAdminAPI()
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// signalShutdown triggers a graceful shutdown, as if a SIGTERM was received.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
