package ports

import "context"

// Port: a boundary for obtaining raw route text from outside the service.
type RouteSource interface {
	// Return the route text exactly as the user supplied it.
	ReadRoute(ctx context.Context) (string, error)
}
