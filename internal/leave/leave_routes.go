package leave

import (
	"go-workforce/internal/domain"
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the leave endpoints. idempotency guards leave
// submission against double posts.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn gin.HandlerFunc,
	gate *rbac.Gate,
	idempotency gin.HandlerFunc,
) {
	own := r.Group("/employees/leave")
	own.Use(authn)
	{
		own.POST("",
			middleware.RateLimitByUser(0.5, 3),
			gate.Require("employee:leaves", "create", domain.RoleEmployee),
			idempotency,
			handler.Create,
		)
		own.GET("",
			gate.Require("employee:leaves", "read", domain.RoleEmployee),
			handler.ListOwn,
		)
		own.GET("/summary",
			gate.Require("employee:leaves", "read", domain.RoleEmployee),
			handler.Summary,
		)
	}

	hr := r.Group("/hr/leaves")
	hr.Use(authn)
	{
		hr.GET("",
			middleware.RateLimitByUser(3, 10),
			gate.Require("hr:leaves", "read", domain.RoleHR),
			handler.ListAll,
		)
		hr.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			gate.Require("hr:leaves", "update", domain.RoleHR),
			handler.Review,
		)
	}

	employer := r.Group("/employer/leaves")
	employer.Use(authn)
	{
		employer.GET("",
			middleware.RateLimitByUser(3, 10),
			gate.Require("employer:leaves", "read", domain.RoleEmployer),
			handler.ListAll,
		)
	}
}
