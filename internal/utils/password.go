package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword 哈希密码
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword 验证密码
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IsBcryptHash 判断字符串是否已经是bcrypt哈希
// 接受 $2a$/$2b$/$2x$/$2y$ 四种前缀,其他语言生成的哈希也能原样使用
func IsBcryptHash(s string) bool {
	if len(s) < 4 || s[0] != '$' || s[1] != '2' || s[3] != '$' {
		return false
	}
	switch s[2] {
	case 'a', 'b', 'x', 'y':
		return true
	}
	return false
}
