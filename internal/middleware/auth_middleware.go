package middleware

import (
	"context"
	"errors"
	"strings"

	"go-workforce/internal/account"
	accounterrors "go-workforce/internal/account/errors"
	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/contextutil"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier returns the account id carried by a valid token.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*account.Account, error)
}

// Authenticate resolves the caller from the bearer token (or the
// access_token cookie) and loads the account on every request, so the role
// used downstream is always the stored one.
func Authenticate(verifier TokenVerifier, accounts AccountFinder, logger ...*zap.Logger) gin.HandlerFunc {
	l := zap.L().Named("middleware.auth")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("middleware.auth")
	}

	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		tokenString = strings.TrimSpace(tokenString)

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abort(c, autherrors.ErrTokenMissing)
			return
		}

		accountID, err := verifier.VerifyToken(tokenString)
		if err != nil {
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				appErr = autherrors.ErrInvalidToken
			}
			l.Debug("token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			abort(c, appErr)
			return
		}

		acc, err := accounts.FindByID(c.Request.Context(), accountID)
		if err != nil {
			if errors.Is(err, accounterrors.ErrAccountNotFound) {
				l.Warn("token for missing account", zap.String("account_id", accountID))
				abort(c, autherrors.ErrAccountGone)
				return
			}
			l.Error("load account failed", zap.String("account_id", accountID), zap.Error(err))
			abort(c, apperror.ErrInternal)
			return
		}

		c.Set("user_id", acc.ID.String())
		c.Set("role", acc.Role.String())
		c.Set("account", acc)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, acc.ID.String())
		ctx = contextutil.WithRole(ctx, acc.Role.String())
		if reqLogger := contextutil.GetLogger(ctx, nil); reqLogger != nil {
			ctx = contextutil.WithLogger(ctx, reqLogger.With(zap.String("user_id", acc.ID.String())))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CurrentAccount returns the account attached by Authenticate.
func CurrentAccount(c *gin.Context) (*account.Account, bool) {
	v, ok := c.Get("account")
	if !ok {
		return nil, false
	}
	acc, ok := v.(*account.Account)
	return acc, ok
}

func abort(c *gin.Context, err *apperror.AppError) {
	response.AbortError(c, err.HTTPStatus, err.Code, err.Message, err.Details)
}
