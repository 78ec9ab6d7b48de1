package employee

import (
	"go-workforce/internal/domain"
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn gin.HandlerFunc,
	gate *rbac.Gate,
) {
	own := r.Group("/employees/profile")
	own.Use(authn)
	{
		own.GET("",
			gate.Require("employee:profile", "read", domain.RoleEmployee),
			handler.GetOwnProfile,
		)
		own.POST("",
			middleware.RateLimitByUser(0.2, 2),
			gate.Require("employee:profile", "create", domain.RoleEmployee),
			handler.CreateOwnProfile,
		)
		own.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			gate.Require("employee:profile", "update", domain.RoleEmployee),
			handler.UpdateOwnProfile,
		)
	}

	hr := r.Group("/hr/employees")
	hr.Use(authn)
	{
		hr.GET("",
			middleware.RateLimitByUser(3, 10),
			gate.Require("hr:employees", "read", domain.RoleHR),
			handler.List,
		)
		hr.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			gate.Require("hr:employees", "read", domain.RoleHR),
			handler.GetByID,
		)
	}

	employer := r.Group("/employer/employees")
	employer.Use(authn)
	{
		employer.GET("",
			middleware.RateLimitByUser(3, 10),
			gate.Require("employer:employees", "read", domain.RoleEmployer),
			handler.List,
		)
		employer.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			gate.Require("employer:employees", "read", domain.RoleEmployer),
			handler.GetByID,
		)
		employer.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			gate.Require("employer:employees", "update", domain.RoleEmployer),
			handler.Update,
		)
	}
}
