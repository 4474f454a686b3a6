package main

import (
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/akkares0101/workshopIT/internal/config"
	"github.com/akkares0101/workshopIT/internal/repository"
	"github.com/akkares0101/workshopIT/internal/router"
	"github.com/akkares0101/workshopIT/internal/storage"
	"github.com/akkares0101/workshopIT/internal/utils"
)

func main() {
	// 加载配置(从项目根目录读取,可用 CONFIG_PATH 覆盖)
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// 初始化用户存储(固定种子,明文密码在此处被哈希)
	userRepo, err := repository.NewUserRepository(cfg.Users)
	if err != nil {
		log.Fatalf("初始化用户存储失败: %v", err)
	}

	// 初始化习题存储(从镜像文件加载)
	worksheetRepo, err := repository.NewWorksheetRepository(cfg.Storage.WorksheetsFile, logger)
	if err != nil {
		log.Fatalf("初始化习题存储失败: %v", err)
	}

	// 初始化附件存储
	uploads, err := storage.NewUploadStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("初始化附件存储失败: %v", err)
	}

	// 初始化JWT
	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
	)

	// 设置路由
	r := router.SetupRouter(cfg, jwtManager, logger, userRepo, worksheetRepo, uploads)

	// 启动服务器
	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
