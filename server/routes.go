package server

import "net/http"

// initRoutes registers every route exactly once. The guard makes a
// repeated call a no-op rather than a duplicate-pattern panic.
func (s *Server) initRoutes() {
	s.routeInit.Do(func() {
		// Account registration and login
		s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
		s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))

		// Google sign-in
		s.RegisterRouteHandler("POST "+RouteAuthRegisterGoogle, ChainMiddleware(s.RegisterGoogleHandler(), s.APIMiddleware()...))
		s.RegisterRouteHandler("POST "+RouteAuthLoginGoogle, ChainMiddleware(s.LoginGoogleHandler(), s.APIMiddleware()...))
		s.RegisterRouteHandler("POST "+RouteAuthGoogleCallback, ChainMiddleware(s.GoogleCallbackHandler(), s.APIMiddleware()...))

		// Token-protected routes
		s.RegisterRouteHandler("GET "+RouteAuthProfile, ChainMiddleware(s.ProfileHandler(), s.APIMiddleware(s.RequireAuth())...))
		if s.chat != nil {
			s.RegisterRouteHandler("POST "+RouteChatCompletions, ChainMiddleware(s.ChatHandler(), s.APIMiddleware(s.RequireAuth())...))
		}

		// Browser preflight requests carry no method-specific pattern
		s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(s.PreflightHandler(), s.CorsMiddleware))

		s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	})
}

// PreflightHandler terminates OPTIONS requests after the CORS middleware
// has set the response headers.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
