// Package auth は認証とセッション管理を提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword は平文パスワードのbcryptハッシュを生成する。
// コストはbcrypt.DefaultCost（10）を使用する。
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("パスワードハッシュの生成に失敗しました: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword は平文パスワードがハッシュと一致するかどうかを返す。
// 比較はbcryptの定数時間比較で行われる。
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
