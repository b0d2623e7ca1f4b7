package session

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mademanik/minjeminapp/model"
	accesssvc "github.com/mademanik/minjeminapp/service/access"
	"github.com/mademanik/minjeminapp/util/keycloak"
)

// LoginURLer is implemented by verifiers that know where the
// authorization-code flow starts (the OIDC one).
type LoginURLer interface {
	LoginURL(state string) string
}

type Controller struct {
	Verifier  keycloak.Verifier
	AdminRole string
	Log       *slog.Logger
}

type sessionResponse struct {
	Decision accesssvc.Decision   `json:"decision"`
	Home     string               `json:"home,omitempty"`
	Menu     []accesssvc.MenuItem `json:"menu,omitempty"`
	Username string               `json:"username,omitempty"`
	LoginURL string               `json:"loginUrl,omitempty"`
}

// GET /session is the one endpoint reachable without a bearer token.
// It answers the guard decision for the current credentials plus the
// navigation surface the client should render. An invalid token is
// redirect material, not an error.
func (h *Controller) View(c echo.Context) error {
	raw := bearerToken(c)

	var sess *model.Session
	if raw != "" {
		verified, err := h.Verifier.Verify(c.Request().Context(), raw)
		if err != nil {
			h.Log.Warn("session verify", "err", err)
		} else {
			sess = verified
		}
	}

	resp := sessionResponse{Decision: accesssvc.Evaluate(sess, true, "")}
	if sess.Authenticated() {
		resp.Home = accesssvc.HomeRoute(sess, h.AdminRole)
		resp.Menu = accesssvc.Menu(sess, h.AdminRole)
		resp.Username = sess.Username
	} else if l, ok := h.Verifier.(LoginURLer); ok {
		resp.LoginURL = l.LoginURL("")
	}
	return c.JSON(http.StatusOK, resp)
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
