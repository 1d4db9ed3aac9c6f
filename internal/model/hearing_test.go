package model

import (
	"testing"
	"time"
)

// TestHearing_IsUpcoming は「今後の開催」タブ判定を検証する。
func TestHearing_IsUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		hearing Hearing
		want    bool
	}{
		{
			name:    "開催予定かつ未来の日付",
			hearing: Hearing{Status: HearingStatusScheduled, Date: now.AddDate(0, 0, 7)},
			want:    true,
		},
		{
			name:    "開催予定かつ当日",
			hearing: Hearing{Status: HearingStatusScheduled, Date: now},
			want:    true,
		},
		{
			name:    "開催予定だが過去の日付",
			hearing: Hearing{Status: HearingStatusScheduled, Date: now.AddDate(0, 0, -1)},
			want:    false,
		},
		{
			name:    "開催中は日付が過去でも今後の開催として扱う",
			hearing: Hearing{Status: HearingStatusOngoing, Date: now.AddDate(0, 0, -3)},
			want:    true,
		},
		{
			name:    "終了済みは対象外",
			hearing: Hearing{Status: HearingStatusCompleted, Date: now.AddDate(0, 0, 7)},
			want:    false,
		},
		{
			name:    "中止は対象外",
			hearing: Hearing{Status: HearingStatusCancelled, Date: now.AddDate(0, 0, 7)},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hearing.IsUpcoming(now); got != tt.want {
				t.Errorf("IsUpcoming() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestHearing_DayBoundaryAcrossTimezones はDB由来のUTC日付と
// サーバーローカルのnowが混在しても日付境界がずれないことを検証する。
func TestHearing_DayBoundaryAcrossTimezones(t *testing.T) {
	// 開催日はDATE列由来のUTC深夜0時
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		now          time.Time
		wantUpcoming bool
	}{
		{
			// ローカル（UTC+9）では日付が翌日に変わっているが、UTCではまだ当日
			name:         "東側オフセットで日付が先行しても当日扱い",
			now:          time.Date(2026, 3, 15, 0, 30, 0, 0, time.FixedZone("UTC+9", 9*60*60)),
			wantUpcoming: true,
		},
		{
			// ローカル（UTC-6）では前日の夜だが、UTCでは当日
			name:         "西側オフセットで日付が遅れても当日扱い",
			now:          time.Date(2026, 3, 13, 20, 0, 0, 0, time.FixedZone("UTC-6", -6*60*60)),
			wantUpcoming: true,
		},
		{
			name:         "UTCで翌日になれば過去",
			now:          time.Date(2026, 3, 15, 0, 30, 0, 0, time.UTC),
			wantUpcoming: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Hearing{Status: HearingStatusScheduled, Date: date}
			if got := h.IsUpcoming(tt.now); got != tt.wantUpcoming {
				t.Errorf("IsUpcoming() = %v, want %v", got, tt.wantUpcoming)
			}
			if got := h.IsPast(tt.now); got != !tt.wantUpcoming {
				t.Errorf("IsPast() = %v, want %v", got, !tt.wantUpcoming)
			}
		})
	}
}

// TestHearing_IsPast は「過去の開催」タブ判定を検証する。
func TestHearing_IsPast(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		hearing Hearing
		want    bool
	}{
		{
			name:    "終了済み",
			hearing: Hearing{Status: HearingStatusCompleted, Date: now.AddDate(0, 0, 7)},
			want:    true,
		},
		{
			name:    "中止",
			hearing: Hearing{Status: HearingStatusCancelled, Date: now},
			want:    true,
		},
		{
			name:    "開催予定だが日付が過去",
			hearing: Hearing{Status: HearingStatusScheduled, Date: now.AddDate(0, 0, -1)},
			want:    true,
		},
		{
			name:    "開催中は日付が過去でも対象外",
			hearing: Hearing{Status: HearingStatusOngoing, Date: now.AddDate(0, 0, -3)},
			want:    false,
		},
		{
			name:    "開催予定かつ当日は対象外",
			hearing: Hearing{Status: HearingStatusScheduled, Date: now},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hearing.IsPast(now); got != tt.want {
				t.Errorf("IsPast() = %v, want %v", got, tt.want)
			}
		})
	}
}
