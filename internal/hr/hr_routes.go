package hr

import (
	"go-workforce/internal/domain"
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn gin.HandlerFunc, gate *rbac.Gate) {
	group := r.Group("/hr/profile")
	group.Use(authn)
	{
		group.GET("",
			gate.Require("hr:profile", "read", domain.RoleHR),
			handler.GetOwnProfile,
		)
		group.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			gate.Require("hr:profile", "update", domain.RoleHR),
			handler.UpdateOwnProfile,
		)
	}
}
