package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// LoadConfig 加载配置文件
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 设置配置文件路径
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// 默认查找 config.yaml
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// 读取环境变量
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 设置默认值
	setDefaults(&cfg)

	// 验证配置
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &cfg, nil
}

// DefaultSeedUsers 默认种子用户
// 没有注册流程,账号列表固定;密码会在启动时被 bcrypt 哈希
func DefaultSeedUsers() []SeedUser {
	return []SeedUser{
		{ID: 1, Name: "Admin", Email: "admin@example.com", Password: "admin123", Role: "admin"},
		{ID: 2, Name: "Teacher A", Email: "teacher@example.com", Password: "teacher123", Role: "teacher"},
		{ID: 3, Name: "Parent B", Email: "parent@example.com", Password: "parent123", Role: "parent"},
	}
}

// setDefaults 设置默认值
func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 14000
	}
	if cfg.Storage.WorksheetsFile == "" {
		cfg.Storage.WorksheetsFile = "./data/worksheets.json"
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "./uploads"
	}
	if cfg.JWT.Algorithm == "" {
		cfg.JWT.Algorithm = "HS256"
	}
	if cfg.JWT.ExpireMinutes == 0 {
		cfg.JWT.ExpireMinutes = 10080 // 7天
	}
	// CORS Origins 必须从配置文件读取,不设置硬编码默认值
	if cfg.CORS.AllowMethods == nil {
		cfg.CORS.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if cfg.CORS.AllowHeaders == nil {
		cfg.CORS.AllowHeaders = []string{"*"}
	}
	if len(cfg.Users) == 0 {
		cfg.Users = DefaultSeedUsers()
	}
}

// validateConfig 验证配置
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务器端口: %d", cfg.Server.Port)
	}

	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("JWT密钥不能为空")
	}

	// 检查数据目录是否存在
	dataDir := filepath.Dir(cfg.Storage.WorksheetsFile)
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("创建数据目录失败: %w", err)
		}
	}

	return nil
}
