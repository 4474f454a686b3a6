package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akkares0101/workshopIT/internal/config"
)

// CORS 跨域中间件
func CORS(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origins := cfg.CORS.Origins
		origin := c.Request.Header.Get("Origin")

		// 检查origin是否在允许列表中
		allowed := false
		for _, o := range origins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}

		if cfg.CORS.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if methods := cfg.CORS.AllowMethods; len(methods) > 0 {
			c.Header("Access-Control-Allow-Methods", strings.Join(methods, ", "))
		}

		if headers := cfg.CORS.AllowHeaders; len(headers) > 0 {
			c.Header("Access-Control-Allow-Headers", strings.Join(headers, ", "))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
