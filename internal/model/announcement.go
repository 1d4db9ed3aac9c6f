// Package model はドメインモデルを定義する。
package model

import "time"

// Announcement は市民向けのお知らせを表す。
// ContentはサニタイズされたHTMLを保持する。
type Announcement struct {
	ID          string
	Title       string
	Content     string
	Category    AnnouncementCategory
	Priority    AnnouncementPriority
	Status      AnnouncementStatus
	PublishDate time.Time
	ExpiryDate  *time.Time
	Author      string
	Featured    bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AnnouncementCategory はお知らせの分類を表す。
type AnnouncementCategory string

const (
	// AnnouncementCategoryGeneral は一般のお知らせ。
	AnnouncementCategoryGeneral AnnouncementCategory = "general"
	// AnnouncementCategoryMeeting は会議のお知らせ。
	AnnouncementCategoryMeeting AnnouncementCategory = "meeting"
	// AnnouncementCategoryEvent はイベントのお知らせ。
	AnnouncementCategoryEvent AnnouncementCategory = "event"
	// AnnouncementCategoryNotice は公示。
	AnnouncementCategoryNotice AnnouncementCategory = "notice"
	// AnnouncementCategoryAlert は緊急のお知らせ。
	AnnouncementCategoryAlert AnnouncementCategory = "alert"
)

// ValidAnnouncementCategory はcategory値が定義済みかどうかを判定する。
func ValidAnnouncementCategory(c AnnouncementCategory) bool {
	switch c {
	case AnnouncementCategoryGeneral, AnnouncementCategoryMeeting,
		AnnouncementCategoryEvent, AnnouncementCategoryNotice, AnnouncementCategoryAlert:
		return true
	default:
		return false
	}
}

// AnnouncementPriority はお知らせの優先度を表す。
type AnnouncementPriority string

const (
	// AnnouncementPriorityLow は低優先度。
	AnnouncementPriorityLow AnnouncementPriority = "low"
	// AnnouncementPriorityMedium は中優先度。
	AnnouncementPriorityMedium AnnouncementPriority = "medium"
	// AnnouncementPriorityHigh は高優先度。
	AnnouncementPriorityHigh AnnouncementPriority = "high"
	// AnnouncementPriorityUrgent は緊急。
	AnnouncementPriorityUrgent AnnouncementPriority = "urgent"
)

// ValidAnnouncementPriority はpriority値が定義済みかどうかを判定する。
func ValidAnnouncementPriority(p AnnouncementPriority) bool {
	switch p {
	case AnnouncementPriorityLow, AnnouncementPriorityMedium,
		AnnouncementPriorityHigh, AnnouncementPriorityUrgent:
		return true
	default:
		return false
	}
}

// AnnouncementStatus はお知らせの公開状態を表す。
type AnnouncementStatus string

const (
	// AnnouncementStatusDraft は下書き状態。
	AnnouncementStatusDraft AnnouncementStatus = "draft"
	// AnnouncementStatusPublished は公開中の状態。
	AnnouncementStatusPublished AnnouncementStatus = "published"
	// AnnouncementStatusArchived はアーカイブ済みの状態。
	AnnouncementStatusArchived AnnouncementStatus = "archived"
)

// ValidAnnouncementStatus はstatus値が定義済みかどうかを判定する。
func ValidAnnouncementStatus(s AnnouncementStatus) bool {
	switch s {
	case AnnouncementStatusDraft, AnnouncementStatusPublished, AnnouncementStatusArchived:
		return true
	default:
		return false
	}
}
