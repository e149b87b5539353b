package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the middleware stack and routes. Read-only endpoints are
// public; running and listing simulations requires a token.
func SetupRouter(h *Handlers, limiter *RateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(CORSMiddleware())
	r.Use(SecurityHeadersMiddleware())
	r.Use(limiter.Middleware())

	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Login)
		v1.GET("/algorithms", h.ListAlgorithms)

		protected := v1.Group("")
		protected.Use(h.auth.Middleware())
		{
			protected.POST("/simulations", h.CreateSimulation)
			protected.GET("/simulations", h.ListSimulations)
			protected.GET("/simulations/:id", h.GetSimulation)
		}
	}

	return r
}
