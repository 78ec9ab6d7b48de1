package auth

import (
	"go-workforce/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public auth endpoints. Profile and avatar only
// need an authenticated caller of any role.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/logout", handler.Logout)

		auth.GET("/profile", authn, middleware.RateLimitByUser(2, 5), handler.Profile)
		auth.GET("/me", authn, middleware.RateLimitByUser(2, 5), handler.Profile)
		auth.PUT("/profile/avatar", authn, middleware.RateLimitByUser(0.2, 2), handler.UpdateAvatar)
	}
}
