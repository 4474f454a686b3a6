package service

import (
	"errors"
	"fmt"

	"github.com/akkares0101/workshopIT/internal/dto"
	"github.com/akkares0101/workshopIT/internal/models"
	"github.com/akkares0101/workshopIT/internal/repository"
	"github.com/akkares0101/workshopIT/internal/utils"
)

// AuthService 认证服务
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo *repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Login 用户登录
// 邮箱不存在和密码错误返回同一个提示,不泄露账号是否存在
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("邮箱或密码错误")
	}

	if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, errors.New("邮箱或密码错误")
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	return &dto.LoginResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

// GetMe 获取当前用户信息
func (s *AuthService) GetMe(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}
