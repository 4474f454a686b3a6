package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akkares0101/workshopIT/internal/models"
	"github.com/akkares0101/workshopIT/internal/repository"
	"github.com/akkares0101/workshopIT/internal/utils"
)

const contextUserKey = "current_user"

// AuthMiddleware JWT认证中间件
// Token有效还不够,声明里的用户ID必须能解析到已知用户
func AuthMiddleware(jwtManager *utils.JWTManager, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "未登录")
			c.Abort()
			return
		}

		// 解析Bearer Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Unauthorized(c, "无效的认证格式")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			utils.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			utils.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// GetCurrentUser 从上下文获取已认证用户
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
