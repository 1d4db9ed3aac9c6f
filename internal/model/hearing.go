// Package model はドメインモデルを定義する。
package model

import "time"

// Hearing は公聴会・審議会のスケジュールを表す。
// Dateは開催日（日付部分のみ意味を持つ）、StartTimeは"14:00"形式の開始時刻。
type Hearing struct {
	ID            string
	Title         string
	Description   string
	Date          time.Time
	StartTime     string
	Venue         string
	Status        HearingStatus
	Participants  []string
	Agenda        []string
	Chairperson   string
	VideoURL      string
	LinkOK        *bool
	LinkCheckedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HearingStatus は公聴会の開催状態を表す。
type HearingStatus string

const (
	// HearingStatusScheduled は開催予定の状態。
	HearingStatusScheduled HearingStatus = "scheduled"
	// HearingStatusOngoing は開催中の状態。
	HearingStatusOngoing HearingStatus = "ongoing"
	// HearingStatusCompleted は終了した状態。
	HearingStatusCompleted HearingStatus = "completed"
	// HearingStatusCancelled は中止された状態。
	HearingStatusCancelled HearingStatus = "cancelled"
)

// ValidHearingStatus はstatus値が定義済みかどうかを判定する。
func ValidHearingStatus(s HearingStatus) bool {
	switch s {
	case HearingStatusScheduled, HearingStatusOngoing, HearingStatusCompleted, HearingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsUpcoming は公聴会が「今後の開催」タブに属するかどうかを判定する。
// status=ongoingは日付に関わらず常に「今後の開催」として扱う。
// status=scheduledは開催日が当日以降の場合のみ「今後の開催」となる。
func (h *Hearing) IsUpcoming(now time.Time) bool {
	if h.Status == HearingStatusOngoing {
		return true
	}
	return h.Status == HearingStatusScheduled && !dateOf(h.Date).Before(dateOf(now))
}

// IsPast は公聴会が「過去の開催」タブに属するかどうかを判定する。
// 終了・中止した公聴会、および開催日が過ぎた公聴会（開催中を除く）が該当する。
func (h *Hearing) IsPast(now time.Time) bool {
	if h.Status == HearingStatusCompleted || h.Status == HearingStatusCancelled {
		return true
	}
	return dateOf(h.Date).Before(dateOf(now)) && h.Status != HearingStatusOngoing
}

// dateOf は時刻情報を落とし日付部分のみを返す。
// DB由来のDateはUTC、nowはサーバーローカルとタイムゾーンが混在するため、
// 比較前にUTCへ正規化して日付境界を揃える。
func dateOf(t time.Time) time.Time {
	y, m, d := t.In(time.UTC).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
