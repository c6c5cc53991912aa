// File: internal/service/password.go
package service

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 是 bcrypt 的 cost factor
const PasswordCost = 10

// maxPasswordBytes 是 bcrypt 實際使用的密碼長度，超過的部分被忽略
const maxPasswordBytes = 72

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 接收明文密碼，回傳含隨機 salt 的 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword(truncate(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), truncate(password))
}

// truncate 只保留前 72 bytes，與其他 bcrypt 實作產生的 hash 相容
func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		return b[:maxPasswordBytes]
	}
	return b
}
