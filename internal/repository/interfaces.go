// Package repository はデータ永続化のインターフェースを定義する。
// 各コンテンツサービスはこのインターフェース越しにストアへアクセスするため、
// バックエンドがPostgreSQLでもテスト用のインメモリ実装でも契約は変わらない。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/sanggunian/internal/model"
)

// UserRepository は職員アカウントの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。
	// 絶対期限切れまたはアイドル期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// Touch はセッションの最終アクセス日時を更新する。
	Touch(ctx context.Context, id string, at time.Time) error
	// DeleteByID は指定IDのセッションを削除する。存在しない場合もエラーにならない。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// OfficialRepository は議員データの永続化インターフェース。
type OfficialRepository interface {
	// List は全議員を登録順（created_at, id）で返す。
	List(ctx context.Context) ([]*model.Official, error)
	// FindByID は指定IDの議員を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Official, error)
	// Create は議員を作成する。
	Create(ctx context.Context, official *model.Official) error
	// Update は議員の全フィールドを更新する。
	Update(ctx context.Context, official *model.Official) error
	// Delete は指定IDの議員を削除する。存在しない場合もエラーにならない。
	Delete(ctx context.Context, id string) error
}

// DocumentRepository は条例・決議文書の永続化インターフェース。
type DocumentRepository interface {
	// List は全文書を登録順（created_at, id）で返す。
	List(ctx context.Context) ([]*model.Document, error)
	// FindByID は指定IDの文書を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Document, error)
	// Create は文書を作成する。
	Create(ctx context.Context, doc *model.Document) error
	// Update は文書の全フィールドを更新する。
	Update(ctx context.Context, doc *model.Document) error
	// Delete は指定IDの文書を削除する。存在しない場合もエラーにならない。
	Delete(ctx context.Context, id string) error
	// ListWithFileURL はfile_urlが設定された公開済み文書を返す。リンクチェック対象。
	ListWithFileURL(ctx context.Context) ([]*model.Document, error)
	// UpdateLinkCheck はリンクチェック結果を記録する。
	UpdateLinkCheck(ctx context.Context, id string, ok bool, checkedAt time.Time) error
}

// HearingRepository は公聴会データの永続化インターフェース。
type HearingRepository interface {
	// List は全公聴会を登録順（created_at, id）で返す。
	List(ctx context.Context) ([]*model.Hearing, error)
	// FindByID は指定IDの公聴会を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Hearing, error)
	// Create は公聴会を作成する。
	Create(ctx context.Context, hearing *model.Hearing) error
	// Update は公聴会の全フィールドを更新する。
	Update(ctx context.Context, hearing *model.Hearing) error
	// Delete は指定IDの公聴会を削除する。存在しない場合もエラーにならない。
	Delete(ctx context.Context, id string) error
	// ListWithVideoURL はvideo_urlが設定された公聴会を返す。リンクチェック対象。
	ListWithVideoURL(ctx context.Context) ([]*model.Hearing, error)
	// UpdateLinkCheck はリンクチェック結果を記録する。
	UpdateLinkCheck(ctx context.Context, id string, ok bool, checkedAt time.Time) error
}

// AnnouncementRepository はお知らせデータの永続化インターフェース。
type AnnouncementRepository interface {
	// List は全お知らせを登録順（created_at, id）で返す。
	List(ctx context.Context) ([]*model.Announcement, error)
	// FindByID は指定IDのお知らせを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Announcement, error)
	// Create はお知らせを作成する。
	Create(ctx context.Context, announcement *model.Announcement) error
	// Update はお知らせの全フィールドを更新する。
	Update(ctx context.Context, announcement *model.Announcement) error
	// Delete は指定IDのお知らせを削除する。存在しない場合もエラーにならない。
	Delete(ctx context.Context, id string) error
}

// CommitteeRepository は委員会データの永続化インターフェース。
type CommitteeRepository interface {
	// List は全委員会を登録順（created_at, id）で返す。
	List(ctx context.Context) ([]*model.Committee, error)
	// FindByID は指定IDの委員会を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Committee, error)
	// Create は委員会を作成する。
	Create(ctx context.Context, committee *model.Committee) error
	// Update は委員会の全フィールドを更新する。
	Update(ctx context.Context, committee *model.Committee) error
	// Delete は指定IDの委員会を削除する。存在しない場合もエラーにならない。
	Delete(ctx context.Context, id string) error
}
