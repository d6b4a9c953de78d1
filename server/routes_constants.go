package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/{$}"

	// Auth Routes
	RouteSignUp = "/sign-up"
	RouteLogIn  = "/log-in"
	RouteLogOut = "/log-out"

	// Guarded Routes
	RouteProtected = "/protected"
)
