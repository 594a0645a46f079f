package routes

import (
	"github.com/sirchsolutions/sirchweb/internal/api/handlers"
	"github.com/sirchsolutions/sirchweb/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health      *handlers.HealthHandler
	Contact     *handlers.ContactHandler
	EarlyAccess *handlers.EarlyAccessHandler
}

// Middleware contains the route-scoped middleware
type Middleware struct {
	// FormRateLimit throttles the public form endpoints per client
	FormRateLimit *middleware.RateLimiter
	MaxBodySize   int64
}
