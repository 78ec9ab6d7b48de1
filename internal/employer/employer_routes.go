package employer

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
	idempotency gin.HandlerFunc,
) {
	employer := r.Group("/employer")
	employer.Use(authn)
	{
		employer.POST("/employees",
			middleware.RateLimitByUser(0.5, 3),
			gate.Require("employer:employees", "create", domain.RoleEmployer),
			idempotency,
			handler.CreateEmployee,
		)
		employer.DELETE("/employees/:id",
			middleware.RateLimitByUser(0.5, 3),
			gate.Require("employer:employees", "delete", domain.RoleEmployer),
			handler.DeleteEmployee,
		)

		employer.POST("/hr",
			middleware.RateLimitByUser(0.5, 3),
			gate.Require("employer:hr", "create", domain.RoleEmployer),
			idempotency,
			handler.CreateHR,
		)

		employer.DELETE("/users/:id",
			middleware.RateLimitByUser(0.5, 3),
			gate.Require("employer:users", "delete", domain.RoleEmployer),
			handler.DeleteUser,
		)
	}
}
