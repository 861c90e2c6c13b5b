package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
	"github.com/hongik-programming-study/backend/internal/service"
)

// accountKey 是解析出的账号在 gin.Context 中的键。
const accountKey = "acting_account"

// ErrMissingAuthHeader 表示请求缺少 Authorization 头。
var ErrMissingAuthHeader = errors.New("authorization header is required")

// Auth 返回一个 Gin 中间件：验证 Bearer 访问令牌，
// 按令牌主体 (邮箱) 加载账号并放进请求上下文。
// 后续 handler 通过 CurrentAccount 取出操作者。
func Auth(tokens *service.TokenProvider, users repository.UserRepository) gin.HandlerFunc {
	if tokens == nil || users == nil {
		panic("dependencies cannot be nil for Auth middleware")
	}

	return func(c *gin.Context) {
		// 1. 从请求头提取 Token
		tokenStr, err := extractToken(c)
		if err != nil {
			logrus.Warn("Auth middleware: missing or malformed Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": err.Error()})
			c.Abort()
			return
		}

		// 2. 验证 Token 并取出主体
		email, err := tokens.Subject(tokenStr)
		if err != nil {
			logrus.WithError(err).Warn("Auth middleware: invalid access token")
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": err.Error()})
			c.Abort()
			return
		}

		// 3. 加载操作者账号
		account, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				// 令牌有效但账号已注销
				logrus.WithField("email", email).Warn("Auth middleware: token subject no longer exists")
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": service.ErrInvalidToken.Error()})
			} else {
				logrus.WithError(err).Error("Auth middleware: error loading account")
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "an unexpected error occurred"})
			}
			c.Abort()
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

// CurrentAccount 从请求上下文取出 Auth 中间件放入的操作者账号。
// 只在挂了 Auth 的路由组里调用；取不到说明接线错误。
func CurrentAccount(c *gin.Context) (*domain.Account, bool) {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok
}

// extractToken 从 Authorization 头提取 Bearer 令牌
func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid token format")
	}
	return parts[1], nil
}
