// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, content, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeInvalidRequest       = "INVALID_REQUEST"
	ErrCodeOfficialNotFound     = "OFFICIAL_NOT_FOUND"
	ErrCodeDocumentNotFound     = "DOCUMENT_NOT_FOUND"
	ErrCodeHearingNotFound      = "HEARING_NOT_FOUND"
	ErrCodeAnnouncementNotFound = "ANNOUNCEMENT_NOT_FOUND"
	ErrCodeCommitteeNotFound    = "COMMITTEE_NOT_FOUND"
	ErrCodeUserNotFound         = "USER_NOT_FOUND"
)

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// どちらが誤っているかは漏らさない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "管理者ロールのアカウントでログインしてください。",
	}
}

// NewValidationError は入力検証エラーを生成する。
// fieldには不正だったフィールド名を指定する。
func NewValidationError(field, reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("入力値が不正です: %s (%s)", field, reason),
		Category: "validation",
		Action:   "入力内容を修正して再度お試しください。",
	}
}

// NewOfficialNotFoundError は議員未検出エラーを生成する。
func NewOfficialNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeOfficialNotFound,
		Message:  fmt.Sprintf("指定された議員が見つかりません: %s", id),
		Category: "content",
		Action:   "IDを確認してください。",
	}
}

// NewDocumentNotFoundError は文書未検出エラーを生成する。
func NewDocumentNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeDocumentNotFound,
		Message:  fmt.Sprintf("指定された文書が見つかりません: %s", id),
		Category: "content",
		Action:   "IDを確認してください。",
	}
}

// NewHearingNotFoundError は公聴会未検出エラーを生成する。
func NewHearingNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeHearingNotFound,
		Message:  fmt.Sprintf("指定された公聴会が見つかりません: %s", id),
		Category: "content",
		Action:   "IDを確認してください。",
	}
}

// NewAnnouncementNotFoundError はお知らせ未検出エラーを生成する。
func NewAnnouncementNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeAnnouncementNotFound,
		Message:  fmt.Sprintf("指定されたお知らせが見つかりません: %s", id),
		Category: "content",
		Action:   "IDを確認してください。",
	}
}

// NewCommitteeNotFoundError は委員会未検出エラーを生成する。
func NewCommitteeNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeCommitteeNotFound,
		Message:  fmt.Sprintf("指定された委員会が見つかりません: %s", id),
		Category: "content",
		Action:   "IDを確認してください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
