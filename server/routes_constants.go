package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Entry route, unauthenticated users land here
	RouteIndex = "/"

	// Auth Routes - Login & Logout
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"
	RouteCallback   = "/callback"

	// Onboarding
	RouteOnboarding = "/onboarding"

	// Downstream route once the profile has been submitted
	RouteProposals = "/proposals/"

	// API Routes
	RouteAPIValidateField = "/api/validate-field"

	// Operational
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStatic = "/static/{file}"
)
