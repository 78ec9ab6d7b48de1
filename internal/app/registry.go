package app

import (
	"go-workforce/internal/account"
	"go-workforce/internal/auth"
	"go-workforce/internal/bootstrap"
	"go-workforce/internal/config"
	"go-workforce/internal/employee"
	"go-workforce/internal/employer"
	"go-workforce/internal/hr"
	"go-workforce/internal/leave"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"
	"go-workforce/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type repositories struct {
	accounts  account.Repository
	employees employee.Repository
	hrs       hr.Repository
	leaves    leave.Repository
	outbox    kafka.OutboxRepository
}

func newRepositories(infra *Infra) repositories {
	return repositories{
		accounts:  account.NewRepository(infra.GormDB),
		employees: employee.NewRepository(infra.GormDB),
		hrs:       hr.NewRepository(infra.GormDB),
		leaves:    leave.NewRepository(infra.GormDB),
		outbox:    kafka.NewOutboxRepository(infra.SQLDB),
	}
}

func registerModules(router *gin.Engine, infra *Infra, cfg *config.Config, logger *zap.Logger) error {
	return mountModules(router, infra, newRepositories(infra), cfg, logger)
}

func mountModules(router *gin.Engine, infra *Infra, repos repositories, cfg *config.Config, logger *zap.Logger) error {
	db := infra.SQLDB
	accountRepo, employeeRepo, hrRepo := repos.accounts, repos.employees, repos.hrs
	leaveRepo, outboxRepo := repos.leaves, repos.outbox

	// --- Authorization ---
	gate, err := rbac.NewGate(logger)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authn := middleware.Authenticate(tokens, accountRepo, logger)
	idempotency := middleware.Idempotency(infra.Redis, logger)
	audit := bootstrap.NewStdoutAuditLogger(logger)

	// --- Services ---
	authService := auth.NewService(db, accountRepo, employeeRepo, hrRepo, outboxRepo, tokens, logger)
	employeeService := employee.NewService(employeeRepo, logger)
	hrService := hr.NewService(hrRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, hrRepo, outboxRepo, logger)
	userService := user.NewService(db, accountRepo, employeeRepo, hrRepo, leaveRepo, outboxRepo, audit, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		MaxAge: cfg.TokenTTL,
		Secure: cfg.IsProduction(),
	}, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	hrHandler := hr.NewHandler(hrService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	employerHandler := employer.NewHandler(authService, userService, logger)
	rbacHandler := rbac.NewHandler(gate, logger)

	// --- Routes ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, authn)
		rbac.RegisterRoutes(api, rbacHandler, authn)
		employee.RegisterRoutes(api, employeeHandler, authn, gate)
		hr.RegisterRoutes(api, hrHandler, authn, gate)
		leave.RegisterRoutes(api, leaveHandler, authn, gate, idempotency)
		employer.RegisterRoutes(api, employerHandler, authn, gate, idempotency)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return nil
}
