// Package model はドメインモデルを定義する。
package model

import "time"

// Role はCMSユーザーの権限ロールを表す。
type Role string

const (
	// RoleAdmin は全操作が可能な管理者ロール。
	RoleAdmin Role = "admin"
	// RoleEditor はコンテンツ編集が可能なロール。
	RoleEditor Role = "editor"
	// RoleContributor は下書き作成のみ可能なロール。
	RoleContributor Role = "contributor"
)

// User はCMSの職員アカウントを表す。
// PasswordHashにはbcryptハッシュを保持し、平文パスワードは保持しない。
type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session は職員のログインセッションを表す。
// クライアントにはセッションIDのみを渡し、本体はサーバー側で保持する。
// ExpiresAtによる絶対期限とLastSeenAtによるアイドル期限の両方で失効する。
type Session struct {
	ID         string
	UserID     string
	Role       Role
	ExpiresAt  time.Time
	LastSeenAt time.Time
	CreatedAt  time.Time
}
