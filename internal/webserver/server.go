package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tkreindler/InventoryManagementAPI/internal/app"
	"github.com/tkreindler/InventoryManagementAPI/internal/auth"
)

// AppContextKey is the echo context key holding the app.AppContext.
const AppContextKey = "appctx"

// UsernameKey is the echo context key holding the authenticated username.
const UsernameKey = "username"

var server *AdminServer

// AdminServer serves the inventory HTTP API
type AdminServer struct {
	root   *echo.Echo
	appCtx app.AppContext
}

// publicPaths skip the token check.
var publicPaths = map[string]bool{
	"/":             true,
	"/authenticate": true,
}

// Init builds the global server. Routes are added afterwards through ApiGET
// and friends.
func Init(appCtx app.AppContext) {
	server = NewAdminServer(appCtx)
}

func NewAdminServer(appCtx app.AppContext) *AdminServer {
	s := &AdminServer{appCtx: appCtx}
	s.root = echo.New()
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.Validator = &structValidator{validate: validator.New()}

	s.root.Use(middleware.Recover())
	s.root.Use(accessLog())
	if limit := appCtx.Config().Web.MaxUpload; limit != "" {
		s.root.Use(middleware.BodyLimit(limit))
	}
	s.root.Use(s.appContextMiddleware)
	s.root.Use(s.authMiddleware)
	return s
}

// Handler exposes the router, mainly for httptest.
func Handler() http.Handler {
	return server.root
}

// Listen starts the global server and blocks until it stops.
func Listen() error {
	cfg := server.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("Start inventory api server %s", addr)
	err := server.root.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.root.Shutdown(ctx)
}

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.DELETE(path, h, m...)
}

func (s *AdminServer) appContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(AppContextKey, s.appCtx)
		return next(c)
	}
}

// authMiddleware resolves the auth cookie to a username. Public paths pass
// through with whatever identity the cookie carries.
func (s *AdminServer) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var username string
		var found bool
		if cookie, err := c.Cookie(auth.CookieName); err == nil {
			username, found = s.appCtx.Tokens().Lookup(cookie.Value)
		}
		if found {
			c.Set(UsernameKey, username)
		} else if !publicPaths[c.Path()] {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error":   "UNAUTHORIZED",
				"message": "Not logged in",
			})
		}
		return next(c)
	}
}

func accessLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			zap.L().Info("http request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Int64("bytes", c.Response().Size),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote", c.RealIP()),
			)
			return nil
		}
	}
}

type structValidator struct {
	validate *validator.Validate
}

func (v *structValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
