// Package accesssvc decides what a session may see: the guard verdict
// for a protected view, the landing route at "/", and the navigation
// menu. All of it derives from role membership; none of it mutates
// the session.
package accesssvc

import "github.com/mademanik/minjeminapp/model"

// Route constants for the browser surface.
const (
	RouteLogin    = "/"
	RouteHome     = "/dashboard"
	RouteProducts = "/dashboard/products"
	RouteRentals  = "/dashboard/rentals"
	RouteRequests = "/dashboard/request-rentals"
)

type DecisionKind string

const (
	DecisionPending  DecisionKind = "PENDING"
	DecisionRedirect DecisionKind = "REDIRECT"
	DecisionAllow    DecisionKind = "ALLOW"
)

type Decision struct {
	Kind   DecisionKind `json:"kind"`
	Target string       `json:"target,omitempty"`
}

// Evaluate gates a protected view. requiredRole may be empty for
// views any authenticated session can open. The redirect fallback
// (the products view) itself requires no role, so an authenticated
// session of any role always terminates in Allow with no redirect
// loops.
func Evaluate(sess *model.Session, initialized bool, requiredRole string) Decision {
	if !initialized {
		return Decision{Kind: DecisionPending}
	}
	if !sess.Authenticated() {
		return Decision{Kind: DecisionRedirect, Target: RouteLogin}
	}
	if requiredRole != "" && !sess.HasRole(requiredRole) {
		return Decision{Kind: DecisionRedirect, Target: RouteProducts}
	}
	return Decision{Kind: DecisionAllow}
}

// HomeRoute is the landing destination at "/": privileged sessions
// land on the dashboard home, everyone else on the products view.
// Unknown paths also resolve through here.
func HomeRoute(sess *model.Session, adminRole string) string {
	if sess.HasRole(adminRole) {
		return RouteHome
	}
	return RouteProducts
}

// MenuItem is one navigation destination.
type MenuItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Route string `json:"route"`
}

// Menu computes the visible destinations once role membership is
// known. Home appears only for the admin role; role membership is
// stable for a session's lifetime, so no cache invalidation exists.
func Menu(sess *model.Session, adminRole string) []MenuItem {
	items := make([]MenuItem, 0, 5)
	if sess.HasRole(adminRole) {
		items = append(items, MenuItem{Key: "home", Label: "Home", Route: RouteHome})
	}
	items = append(items,
		MenuItem{Key: "products", Label: "Products", Route: RouteProducts},
		MenuItem{Key: "rentals", Label: "My Rentals", Route: RouteRentals},
		MenuItem{Key: "request-rentals", Label: "Request Rentals", Route: RouteRequests},
		MenuItem{Key: "signout", Label: "Sign Out", Route: RouteLogin},
	)
	return items
}
