package rbac

import (
	"sort"
	"sync"

	"go-workforce/internal/domain"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gate is the role stage of request authorization. Routes declare which
// roles may perform an action on a resource; the policy is collected at
// registration time and enforced against the role resolved by Authenticate.
type Gate struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewGate(logger ...*zap.Logger) (*Gate, error) {
	l := zap.L().Named("rbac.gate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.gate")
	}

	e, err := NewEnforcer()
	if err != nil {
		return nil, err
	}
	return &Gate{enforcer: e, logger: l}, nil
}

// Grant adds (role, resource, action) to the policy. Granting twice is a no-op.
func (g *Gate) Grant(resource, action string, roles ...domain.Role) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, role := range roles {
		if _, err := g.enforcer.AddPolicy(role.String(), resource, action); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gate) Allowed(role domain.Role, resource, action string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enforcer.Enforce(role.String(), resource, action)
}

// Require grants the listed roles and returns a handler enforcing the grant.
// It must run after Authenticate has set "role".
func (g *Gate) Require(resource, action string, roles ...domain.Role) gin.HandlerFunc {
	if err := g.Grant(resource, action, roles...); err != nil {
		panic("rbac: grant " + resource + ":" + action + ": " + err.Error())
	}

	return func(c *gin.Context) {
		role := domain.Role(c.GetString("role"))
		if role == "" {
			writeError(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := g.Allowed(role, resource, action)
		if err != nil {
			g.logger.Error("rbac enforce failed",
				zap.String("role", role.String()),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			writeError(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			g.logger.Warn("rbac denied",
				zap.String("user_id", c.GetString("user_id")),
				zap.String("role", role.String()),
				zap.String("resource", resource),
				zap.String("action", action),
			)
			writeError(c, apperror.ErrForbidden.WithDetails(gin.H{"required": resource + ":" + action}))
			return
		}

		c.Next()
	}
}

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// PermissionsFor lists every grant held by role, sorted for stable output.
func (g *Gate) PermissionsFor(role domain.Role) ([]Permission, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rows, err := g.enforcer.GetFilteredPolicy(0, role.String())
	if err != nil {
		return nil, err
	}

	perms := make([]Permission, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		perms = append(perms, Permission{Resource: row[1], Action: row[2]})
	}
	sort.Slice(perms, func(i, j int) bool {
		if perms[i].Resource != perms[j].Resource {
			return perms[i].Resource < perms[j].Resource
		}
		return perms[i].Action < perms[j].Action
	})
	return perms, nil
}

func writeError(c *gin.Context, err *apperror.AppError) {
	response.AbortError(c, err.HTTPStatus, err.Code, err.Message, err.Details)
}
