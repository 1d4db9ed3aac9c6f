// Package model はドメインモデルを定義する。
package model

import "time"

// Committee は市議会の委員会を表す。
type Committee struct {
	ID              string
	Name            string
	Description     string
	Chairman        string
	Members         []string
	MeetingSchedule string
	Status          CommitteeStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CommitteeStatus は委員会の活動状態を表す。
type CommitteeStatus string

const (
	// CommitteeStatusActive は活動中の状態。
	CommitteeStatusActive CommitteeStatus = "active"
	// CommitteeStatusInactive は休止中の状態。
	CommitteeStatusInactive CommitteeStatus = "inactive"
)

// ValidCommitteeStatus はstatus値が定義済みかどうかを判定する。
func ValidCommitteeStatus(s CommitteeStatus) bool {
	switch s {
	case CommitteeStatusActive, CommitteeStatusInactive:
		return true
	default:
		return false
	}
}
