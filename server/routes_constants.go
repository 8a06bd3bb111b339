package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Local accounts
	RouteAuthRegister = "/auth/register"
	RouteAuthLogin    = "/auth/login"

	// Auth Routes - Google sign-in
	RouteAuthRegisterGoogle = "/auth/register/google"
	RouteAuthLoginGoogle    = "/auth/login/google"
	RouteAuthGoogleCallback = "/auth/google/callback"

	// Auth Routes - Session
	RouteAuthProfile = "/auth/profile"

	// Chat Routes
	RouteChatCompletions = "/chat/completions"

	// Operational Routes
	RouteHealth = "/healthz"
)
