package employer

import (
	"net/http"

	"go-workforce/internal/auth"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"
	"go-workforce/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler is the employer-only surface for account provisioning and removal.
// Directory reads and leave listings are mounted by their own packages.
type Handler struct {
	accounts auth.Service
	users    user.Service
	logger   *zap.Logger
}

func NewHandler(accounts auth.Service, users user.Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employer.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employer.handler")
	}
	return &Handler{accounts: accounts, users: users, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("employer request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	} else {
		h.logger.Warn("employer request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http employer validation failed", zap.String("path", c.FullPath()), zap.Error(err))
	appErr := apperror.MapValidationError(err)
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var req auth.ProvisionEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.accounts.ProvisionEmployee(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.logger.Info("employee provisioned",
		zap.String("account_id", resp.Account.ID),
		zap.String("actor_id", c.GetString("user_id")),
	)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CreateHR(c *gin.Context) {
	var req auth.ProvisionHRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.accounts.ProvisionHR(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.logger.Info("hr provisioned",
		zap.String("account_id", resp.Account.ID),
		zap.String("actor_id", c.GetString("user_id")),
	)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	resp, err := h.users.DeleteEmployee(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	resp, err := h.users.DeleteAccount(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
