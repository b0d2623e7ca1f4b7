package echoServer

import (
	"github.com/labstack/echo/v4"

	dashboardctrl "github.com/mademanik/minjeminapp/app/echoServer/controller/dashboard"
	productctrl "github.com/mademanik/minjeminapp/app/echoServer/controller/product"
	rentalctrl "github.com/mademanik/minjeminapp/app/echoServer/controller/rental"
	sessionctrl "github.com/mademanik/minjeminapp/app/echoServer/controller/session"
	"github.com/mademanik/minjeminapp/util/keycloak"
)

type C struct {
	Session   *sessionctrl.Controller
	Product   *productctrl.Controller
	Rental    *rentalctrl.Controller
	Dashboard *dashboardctrl.Controller

	Verifier  keycloak.Verifier
	AdminRole string
}

func Register(e *echo.Echo, c C) {
	// Public: the guard decision endpoint answers without a token so
	// the client can learn where to go.
	e.GET("/session", c.Session.View)

	// Everything else requires a verified bearer token.
	views := e.Group("/views")
	views.Use(SessionAuth(c.Verifier))

	// Products
	views.GET("/products", c.Product.View)
	views.POST("/products/search", c.Product.Search)
	views.POST("/products/reset", c.Product.Reset)
	views.POST("/products/:id/delete", c.Product.Delete)
	views.POST("/products/form/open", c.Product.FormOpen)
	views.POST("/products/form/submit", c.Product.FormSubmit)
	views.POST("/products/form/cancel", c.Product.FormCancel)

	// Rental requests (owner inbox)
	views.GET("/request-rentals", c.Rental.RequestsView)
	views.POST("/request-rentals/search", c.Rental.RequestsSearch)
	views.POST("/request-rentals/reset", c.Rental.RequestsReset)
	views.POST("/request-rentals/form/open", c.Rental.FormOpen)
	views.POST("/request-rentals/form/submit", c.Rental.FormSubmit)
	views.POST("/request-rentals/form/cancel", c.Rental.FormCancel)
	views.POST("/request-rentals/:id/delete", c.Rental.RequestsDelete)
	views.POST("/request-rentals/:id/:verb", c.Rental.Transition)

	// My rentals (borrower history)
	views.GET("/my-rentals", c.Rental.MineView)
	views.POST("/my-rentals/search", c.Rental.MineSearch)
	views.POST("/my-rentals/reset", c.Rental.MineReset)

	// Admin home
	views.GET("/dashboard", c.Dashboard.View, RequireRole(c.AdminRole))
}
