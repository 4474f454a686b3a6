package utils

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator 获取验证器实例
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateStruct 验证结构体
func ValidateStruct(s interface{}) error {
	if err := GetValidator().Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError 格式化验证错误
func formatValidationError(err error) error {
	var msgs []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			var message string
			switch tag {
			case "required":
				message = fmt.Sprintf("%s是必填字段", field)
			case "email":
				message = fmt.Sprintf("%s必须是有效的邮箱地址", field)
			case "oneof":
				message = fmt.Sprintf("%s必须是以下取值之一: %s", field, param)
			default:
				message = fmt.Sprintf("%s验证失败: %s", field, tag)
			}

			msgs = append(msgs, message)
		}
	}

	if len(msgs) > 0 {
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}

	return err
}
