// app/echoServer/middleware.go
package echoServer

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mademanik/minjeminapp/app/echoServer/sessionx"
	accesssvc "github.com/mademanik/minjeminapp/service/access"
	"github.com/mademanik/minjeminapp/util/keycloak"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// SessionAuth verifies the bearer token and stores the resulting
// session in context. Authorization failures answer 401 JSON; they
// are redirect material for the client, never an error toast.
func SessionAuth(verifier keycloak.Verifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			sess, err := verifier.Verify(c.Request().Context(), auth)
			if err != nil {
				return nil, err
			}
			sessionx.Set(c, sess)
			return sess, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
		},
	})
}

// RequireRole gates a view through the guard. The GUI consumes the
// 403 body's target as a redirect; the fallback route requires no
// role, so redirecting there can never loop.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessionx.FromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
			}
			switch d := accesssvc.Evaluate(sess, true, role); d.Kind {
			case accesssvc.DecisionAllow:
				return next(c)
			default:
				return c.JSON(http.StatusForbidden, echo.Map{
					"message": "forbidden",
					"target":  d.Target,
				})
			}
		}
	}
}
