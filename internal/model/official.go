// Package model はドメインモデルを定義する。
package model

import "time"

// Official は市議会議員を表す。
type Official struct {
	ID        string
	Name      string
	Position  string
	Committee string
	Email     string
	Phone     string
	Bio       string
	ImageURL  string
	Status    OfficialStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OfficialStatus は議員の在任状態を表す。
type OfficialStatus string

const (
	// OfficialStatusActive は在任中の状態。
	OfficialStatusActive OfficialStatus = "active"
	// OfficialStatusInactive は退任済みの状態。
	OfficialStatusInactive OfficialStatus = "inactive"
)

// ValidOfficialStatus はstatus値が定義済みかどうかを判定する。
func ValidOfficialStatus(s OfficialStatus) bool {
	switch s {
	case OfficialStatusActive, OfficialStatusInactive:
		return true
	default:
		return false
	}
}
