// app/echoServer/sessionx/session.go
package sessionx

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/mademanik/minjeminapp/model"
)

const contextKey = "session"

var ErrNoSession = errors.New("no session in context")

// Set stores the verified session for downstream handlers.
func Set(c echo.Context, s *model.Session) {
	c.Set(contextKey, s)
}

// FromContext returns the verified session placed by the auth
// middleware.
func FromContext(c echo.Context) (*model.Session, error) {
	s, ok := c.Get(contextKey).(*model.Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}
