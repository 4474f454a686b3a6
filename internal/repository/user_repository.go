package repository

import (
	"errors"
	"fmt"

	"github.com/akkares0101/workshopIT/internal/config"
	"github.com/akkares0101/workshopIT/internal/models"
	"github.com/akkares0101/workshopIT/internal/utils"
)

// ErrUserNotFound 用户不存在
var ErrUserNotFound = errors.New("用户不存在")

// UserRepository 用户数据访问层
// 账号列表在启动时由配置种子构建,进程生命周期内只读
type UserRepository struct {
	users   []*models.User
	byID    map[uint]*models.User
	byEmail map[string]*models.User
}

// NewUserRepository 从种子列表创建用户Repository
// 明文密码在此处统一做bcrypt哈希,已是哈希的原样保留
func NewUserRepository(seed []config.SeedUser) (*UserRepository, error) {
	r := &UserRepository{
		byID:    make(map[uint]*models.User),
		byEmail: make(map[string]*models.User),
	}

	for _, su := range seed {
		if err := utils.ValidateStruct(su); err != nil {
			return nil, fmt.Errorf("种子用户 %q 配置无效: %w", su.Email, err)
		}
		if _, ok := r.byID[su.ID]; ok {
			return nil, fmt.Errorf("种子用户ID重复: %d", su.ID)
		}
		if _, ok := r.byEmail[su.Email]; ok {
			return nil, fmt.Errorf("种子用户邮箱重复: %s", su.Email)
		}

		passwordHash := su.Password
		if !utils.IsBcryptHash(passwordHash) {
			hashed, err := utils.HashPassword(su.Password)
			if err != nil {
				return nil, fmt.Errorf("密码哈希失败: %w", err)
			}
			passwordHash = hashed
		}

		user := &models.User{
			ID:           su.ID,
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: passwordHash,
			Role:         su.Role,
		}
		r.users = append(r.users, user)
		r.byID[user.ID] = user
		r.byEmail[user.Email] = user
	}

	return r, nil
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List 获取全部用户(按种子顺序)
func (r *UserRepository) List() []*models.User {
	out := make([]*models.User, len(r.users))
	copy(out, r.users)
	return out
}
