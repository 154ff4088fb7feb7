package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	mediaHandler   mediaHandler
	authHandler    authHandler
	adminHandler   adminHandler
}
