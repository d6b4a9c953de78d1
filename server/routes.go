package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleware()...))

	// SIGN UP
	s.RegisterRouteHandler("GET "+RouteSignUp, ChainMiddleware(s.SignUpGetHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSignUp, ChainMiddleware(s.SignUpPostHandler(), s.HTMLMiddleware()...))

	// LOG IN / LOG OUT
	s.RegisterRouteHandler("GET "+RouteLogIn, ChainMiddleware(s.LogInGetHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogIn, ChainMiddleware(s.LogInPostHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogOut, ChainMiddleware(s.LogOutHandler(), s.HTMLMiddleware()...))

	// Guarded routes (require a resolvable session)
	s.RegisterRouteHandler("GET "+RouteProtected, ChainMiddleware(s.ProtectedHandler(), s.HTMLMiddleware(s.RequireSessionAuth())...))
}
