package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mademanik/minjeminapp/app/echoServer/sessionx"
	"github.com/mademanik/minjeminapp/service/workspace"
)

type Controller struct {
	Hub *workspace.Hub
	Log *slog.Logger
}

// GET /views/dashboard loads both aggregates in parallel; either
// side may carry an error while the other renders.
func (h *Controller) View(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	snap := ws.Dashboard.Load(c.Request().Context(), sess.Token)
	if snap.ProductsErr != "" || snap.RentalsErr != "" {
		h.Log.Warn("dashboard partial failure",
			"products_err", snap.ProductsErr,
			"rentals_err", snap.RentalsErr,
		)
	}
	return c.JSON(http.StatusOK, snap)
}
