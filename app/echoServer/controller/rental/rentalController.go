package rental

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mademanik/minjeminapp/app/echoServer/sessionx"
	"github.com/mademanik/minjeminapp/model"
	"github.com/mademanik/minjeminapp/repository/rest"
	rentalsvc "github.com/mademanik/minjeminapp/service/rental"
	"github.com/mademanik/minjeminapp/service/view"
	"github.com/mademanik/minjeminapp/service/workspace"
)

type Controller struct {
	Hub *workspace.Hub
	Log *slog.Logger
}

type requestsResponse struct {
	List view.Snapshot[model.Rental, model.RentalFilter] `json:"list"`
	Form rentalsvc.FormSnapshot                          `json:"form"`
}

func (h *Controller) requestsSnapshot(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	return c.JSON(http.StatusOK, requestsResponse{
		List: ws.Rentals.Requests.Snapshot(),
		Form: ws.Rentals.Form.Snapshot(),
	})
}

// GET /views/request-rentals
func (h *Controller) RequestsView(c echo.Context) error {
	return h.requestsSnapshot(c)
}

// POST /views/request-rentals/search
func (h *Controller) RequestsSearch(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	var filter model.RentalFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	ws := h.Hub.For(c.Request().Context(), sess)
	if err := ws.Rentals.Requests.Search(c.Request().Context(), sess.Token, filter); err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("rental search", "err", err)
	}
	return h.requestsSnapshot(c)
}

// POST /views/request-rentals/reset
func (h *Controller) RequestsReset(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	if err := ws.Rentals.Requests.Reset(c.Request().Context(), sess.Token); err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("rental reset", "err", err)
	}
	return h.requestsSnapshot(c)
}

// POST /views/request-rentals/:id/delete
func (h *Controller) RequestsDelete(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ws := h.Hub.For(c.Request().Context(), sess)
	// Delete fails only when the removal itself did; a reload failure
	// shows up in the snapshot's phase instead.
	if err := ws.Rentals.Requests.Delete(c.Request().Context(), sess.Token, id); err != nil {
		h.Log.Error("rental delete", "err", err, "id", id)
		return upstreamError(c, err)
	}
	return h.requestsSnapshot(c)
}

// POST /views/request-rentals/:id/:verb handles approve, start,
// complete and cancel. The upstream enforces legal ordering; its
// message comes back verbatim on refusal.
func (h *Controller) Transition(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ws := h.Hub.For(c.Request().Context(), sess)
	if err := ws.Rentals.Transition(c.Request().Context(), sess.Token, id, c.Param("verb")); err != nil {
		if errors.Is(err, rentalsvc.ErrUnknownTransition) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown action"})
		}
		h.Log.Error("rental transition", "err", err, "id", id, "verb", c.Param("verb"))
		return upstreamError(c, err)
	}
	return h.requestsSnapshot(c)
}

type openReq struct {
	ID int64 `json:"id"`
}

// POST /views/request-rentals/form/open
func (h *Controller) FormOpen(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	var req openReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	ws := h.Hub.For(c.Request().Context(), sess)
	if req.ID == 0 {
		ws.Rentals.Form.OpenNew()
		return h.requestsSnapshot(c)
	}
	if err := ws.Rentals.Form.OpenEdit(c.Request().Context(), sess.Token, req.ID); err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("rental form hydrate", "err", err, "id", req.ID)
	}
	return h.requestsSnapshot(c)
}

// submitReq covers both modes; the form controller picks the fields
// matching its current mode.
type submitReq struct {
	ItemID    int64              `json:"itemId"`
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
	Status    model.RentalStatus `json:"status"`
	Paid      bool               `json:"paid"`
}

// POST /views/request-rentals/form/submit
func (h *Controller) FormSubmit(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	ws := h.Hub.For(c.Request().Context(), sess)
	ws.Rentals.Form.SetCreateFields(rentalsvc.CreateFields{
		ItemID:    req.ItemID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	ws.Rentals.Form.SetEditFields(rentalsvc.EditFields{
		Status: req.Status,
		Paid:   req.Paid,
	})

	fieldErrs, err := ws.Rentals.Form.Submit(c.Request().Context(), sess.Token)
	if fieldErrs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  fieldErrs,
		})
	}
	if err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("rental form submit", "err", err)
		return upstreamError(c, err)
	}
	return h.requestsSnapshot(c)
}

// POST /views/request-rentals/form/cancel
func (h *Controller) FormCancel(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	ws.Rentals.Form.Cancel()
	return h.requestsSnapshot(c)
}

// GET /views/my-rentals
func (h *Controller) MineView(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	return c.JSON(http.StatusOK, echo.Map{"list": ws.Rentals.Mine.Snapshot()})
}

// POST /views/my-rentals/search
func (h *Controller) MineSearch(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	var filter model.RentalFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	if err := ws.Rentals.Mine.Search(c.Request().Context(), sess.Token, filter); err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("my rentals search", "err", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"list": ws.Rentals.Mine.Snapshot()})
}

// POST /views/my-rentals/reset
func (h *Controller) MineReset(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	if err := ws.Rentals.Mine.Reset(c.Request().Context(), sess.Token); err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("my rentals reset", "err", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"list": ws.Rentals.Mine.Snapshot()})
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func upstreamError(c echo.Context, err error) error {
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.Status, echo.Map{"message": apiErr.Error()})
	}
	if errors.Is(err, rest.ErrNoToken) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"message": "upstream unavailable"})
}
