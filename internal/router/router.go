package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/akkares0101/workshopIT/internal/config"
	"github.com/akkares0101/workshopIT/internal/handler"
	"github.com/akkares0101/workshopIT/internal/middleware"
	"github.com/akkares0101/workshopIT/internal/models"
	"github.com/akkares0101/workshopIT/internal/repository"
	"github.com/akkares0101/workshopIT/internal/service"
	"github.com/akkares0101/workshopIT/internal/storage"
	"github.com/akkares0101/workshopIT/internal/utils"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	userRepo *repository.UserRepository,
	worksheetRepo *repository.WorksheetRepository,
	uploads *storage.UploadStore,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "习题共享平台 API",
			"version": "1.0.0",
		})
	})

	// 附件静态服务
	r.Static("/uploads", uploads.Dir())

	// 初始化Service
	authService := service.NewAuthService(userRepo, jwtManager)
	worksheetService := service.NewWorksheetService(worksheetRepo, uploads, logger)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	worksheetHandler := handler.NewWorksheetHandler(worksheetService, cfg.Server.PublicBaseURL)
	adminHandler := handler.NewAdminHandler(userRepo, worksheetService)

	authRequired := middleware.AuthMiddleware(jwtManager, userRepo)

	// API路由组
	api := r.Group("/api")
	{
		// 认证
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", authRequired, authHandler.GetMe)

		// 习题
		api.GET("/worksheets", worksheetHandler.List)
		api.GET("/worksheets/mine", authRequired, worksheetHandler.Mine)
		api.POST("/worksheets", authRequired,
			middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin),
			worksheetHandler.Create)
		api.PUT("/worksheets/:id", authRequired,
			middleware.RequireRoles(models.RoleAdmin),
			worksheetHandler.Update)
		api.DELETE("/worksheets/:id", authRequired,
			middleware.RequireRoles(models.RoleAdmin),
			worksheetHandler.Delete)

		// 管理员接口
		adminGroup := api.Group("/admin")
		adminGroup.Use(authRequired, middleware.RequireRoles(models.RoleAdmin))
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.GET("/worksheets", adminHandler.ListWorksheets)
		}
	}

	return r
}
