package rbac

import (
	"net/http"

	"go-workforce/internal/domain"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	gate   *Gate
	logger *zap.Logger
}

func NewHandler(gate *Gate, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{gate: gate, logger: l}
}

type PermissionsResponse struct {
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// MyPermissions lets a client decide which views to render for the caller.
func (h *Handler) MyPermissions(c *gin.Context) {
	role := domain.Role(c.GetString("role"))

	perms, err := h.gate.PermissionsFor(role)
	if err != nil {
		h.logger.Error("list permissions failed", zap.String("role", role.String()), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{Role: role.String(), Permissions: perms}, nil)
}
