package product

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mademanik/minjeminapp/app/echoServer/sessionx"
	"github.com/mademanik/minjeminapp/model"
	"github.com/mademanik/minjeminapp/repository/rest"
	productsvc "github.com/mademanik/minjeminapp/service/product"
	"github.com/mademanik/minjeminapp/service/view"
	"github.com/mademanik/minjeminapp/service/workspace"
)

type Controller struct {
	Hub *workspace.Hub
	Log *slog.Logger
}

type viewResponse struct {
	List view.Snapshot[model.Product, model.ProductFilter] `json:"list"`
	Form productsvc.FormSnapshot                           `json:"form"`
}

func (h *Controller) snapshot(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	return c.JSON(http.StatusOK, viewResponse{
		List: ws.Products.List.Snapshot(),
		Form: ws.Products.Form.Snapshot(),
	})
}

// GET /views/products
func (h *Controller) View(c echo.Context) error {
	return h.snapshot(c)
}

// POST /views/products/search
func (h *Controller) Search(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	var filter model.ProductFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	ws := h.Hub.For(c.Request().Context(), sess)
	if err := ws.Products.List.Search(c.Request().Context(), sess.Token, filter); err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("product search", "err", err)
	}
	return h.snapshot(c)
}

// POST /views/products/reset
func (h *Controller) Reset(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	if err := ws.Products.List.Reset(c.Request().Context(), sess.Token); err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("product reset", "err", err)
	}
	return h.snapshot(c)
}

// POST /views/products/:id/delete
func (h *Controller) Delete(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ws := h.Hub.For(c.Request().Context(), sess)
	// Delete fails only when the removal itself did; a reload failure
	// shows up in the snapshot's phase instead.
	if err := ws.Products.List.Delete(c.Request().Context(), sess.Token, id); err != nil {
		h.Log.Error("product delete", "err", err, "id", id)
		return upstreamError(c, err)
	}
	return h.snapshot(c)
}

type openReq struct {
	ID int64 `json:"id"`
}

// POST /views/products/form/open: no id opens the create modal, an
// id opens edit mode and hydrates from a fresh fetch.
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
		ws.Products.Form.OpenNew()
		return h.snapshot(c)
	}
	if err := ws.Products.Form.OpenEdit(c.Request().Context(), sess.Token, req.ID); err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("product form hydrate", "err", err, "id", req.ID)
	}
	return h.snapshot(c)
}

// POST /views/products/form/submit
func (h *Controller) FormSubmit(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	var fields productsvc.FormFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	ws := h.Hub.For(c.Request().Context(), sess)
	ws.Products.Form.SetFields(fields)

	fieldErrs, err := ws.Products.Form.Submit(c.Request().Context(), sess.Token)
	if fieldErrs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  fieldErrs,
		})
	}
	if err != nil && !errors.Is(err, view.ErrSuperseded) {
		h.Log.Error("product form submit", "err", err)
		return upstreamError(c, err)
	}
	return h.snapshot(c)
}

// POST /views/products/form/cancel
func (h *Controller) FormCancel(c echo.Context) error {
	sess, err := sessionx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}
	ws := h.Hub.For(c.Request().Context(), sess)
	ws.Products.Form.Cancel()
	return h.snapshot(c)
}

// upstreamError surfaces the backend's own message verbatim when it
// sent one, and a generic notice otherwise.
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
