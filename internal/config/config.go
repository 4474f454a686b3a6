package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Users   []SeedUser    `mapstructure:"users"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
	// PublicBaseURL 对外可访问的基础地址(反向代理场景);为空时按请求推导
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// GetAddress 获取服务器地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig 存储配置
type StorageConfig struct {
	// WorksheetsFile 习题集合的持久化镜像文件(JSON数组,每次变更整体重写)
	WorksheetsFile string `mapstructure:"worksheets_file"`
	// UploadDir 附件目录,由 /uploads 静态路由对外提供
	UploadDir string `mapstructure:"upload_dir"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	Algorithm     string `mapstructure:"algorithm"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

// GetExpireDuration 获取过期时间
func (j *JWTConfig) GetExpireDuration() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// CORSConfig CORS配置
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// SeedUser 种子用户配置
// Password 可以是明文(启动时哈希)或已经是 bcrypt 哈希
type SeedUser struct {
	ID       uint   `mapstructure:"id" validate:"required"`
	Name     string `mapstructure:"name" validate:"required"`
	Email    string `mapstructure:"email" validate:"required,email"`
	Password string `mapstructure:"password" validate:"required"`
	Role     string `mapstructure:"role" validate:"required,oneof=admin teacher parent"`
}
