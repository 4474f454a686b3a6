package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akkares0101/workshopIT/internal/utils"
)

// RequireRoles 角色权限中间件,必须在 AuthMiddleware 之后使用
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			utils.Unauthorized(c, "未登录")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		utils.Forbidden(c, "没有访问权限(需要 "+strings.Join(roles, ", ")+")")
		c.Abort()
	}
}
