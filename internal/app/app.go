package app

import (
	"database/sql"
	"time"

	"go-workforce/internal/config"
	"go-workforce/internal/middleware"
	"go-workforce/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// Infra holds the shared connections the API process owns.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

// BuildApp connects infrastructure, installs global middleware and mounts
// every module under /api. The caller closes the returned Infra.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	log := logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), connectRetries, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	infra := &Infra{GormDB: gormDB, SQLDB: sqlDB}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries, logger)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.Redis = rdb

	router.Use(corsMiddleware(cfg.CORSOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))

	if err := registerModules(router, infra, cfg, logger); err != nil {
		infra.Close()
		return nil, err
	}

	log.Info("modules registered")
	return infra, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-Type", "X-Request-ID", "Idempotency-Key"}
	c.ExposeHeaders = []string{"X-Request-ID", "Idempotent-Replayed"}
	c.MaxAge = 12 * time.Hour
	return cors.New(c)
}
