// Package model はドメインモデルを定義する。
package model

import "time"

// Document は条例・決議の文書を表す。
type Document struct {
	ID              string
	Title           string
	ReferenceNumber string
	Type            DocumentType
	Author          string
	Status          DocumentStatus
	DateCreated     time.Time
	DatePublished   *time.Time
	Description     string
	FileURL         string
	Tags            []string
	LinkOK          *bool      // リンクチェック結果。未チェックの場合はnil
	LinkCheckedAt   *time.Time // 最終リンクチェック日時
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DocumentType は文書の種別を表す。
type DocumentType string

const (
	// DocumentTypeOrdinance は条例。
	DocumentTypeOrdinance DocumentType = "ordinance"
	// DocumentTypeResolution は決議。
	DocumentTypeResolution DocumentType = "resolution"
)

// ValidDocumentType はtype値が定義済みかどうかを判定する。
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeOrdinance, DocumentTypeResolution:
		return true
	default:
		return false
	}
}

// DocumentStatus は文書の承認ワークフロー状態を表す。
// 状態遷移に制約はなく、任意の状態から任意の状態へ変更できる。
type DocumentStatus string

const (
	// DocumentStatusDraft は下書き状態。
	DocumentStatusDraft DocumentStatus = "draft"
	// DocumentStatusPending は承認待ち状態。
	DocumentStatusPending DocumentStatus = "pending"
	// DocumentStatusApproved は承認済み状態。
	DocumentStatusApproved DocumentStatus = "approved"
	// DocumentStatusPublished は公開済み状態。
	DocumentStatusPublished DocumentStatus = "published"
)

// ValidDocumentStatus はstatus値が定義済みかどうかを判定する。
func ValidDocumentStatus(s DocumentStatus) bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusPending, DocumentStatusApproved, DocumentStatusPublished:
		return true
	default:
		return false
	}
}
