// Package hearing は公聴会スケジュール管理のドメインロジックを提供する。
package hearing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/repository"
)

// Tab は公聴会一覧の表示タブ。
const (
	// TabUpcoming は今後の開催タブ。
	TabUpcoming = "upcoming"
	// TabPast は過去の開催タブ。
	TabPast = "past"
)

// Filter は公聴会一覧の絞り込み条件。各条件はANDで結合される。
// Tabが空文字または"all"の場合はタブで絞り込まない。
type Filter struct {
	Query  string
	Status string
	Tab    string
}

// CreateInput は公聴会作成の入力。
// ParticipantsとAgendaは改行区切りの生テキスト。
type CreateInput struct {
	Title        string
	Description  string
	Date         time.Time
	StartTime    string
	Venue        string
	Status       model.HearingStatus
	Participants string
	Agenda       string
	Chairperson  string
	VideoURL     string
}

// UpdateInput は公聴会更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Title        *string
	Description  *string
	Date         *time.Time
	StartTime    *string
	Venue        *string
	Status       *model.HearingStatus
	Participants *string
	Agenda       *string
	Chairperson  *string
	VideoURL     *string
}

// Service は公聴会管理のサービス層。
// nowFnはテストで現在時刻を固定するために差し替え可能。
type Service struct {
	repo  repository.HearingRepository
	nowFn func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.HearingRepository) *Service {
	return &Service{repo: repo, nowFn: time.Now}
}

// List はフィルタ条件に一致する公聴会を登録順で返す。
func (s *Service) List(ctx context.Context, filter Filter) ([]*model.Hearing, error) {
	hearings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("公聴会一覧の取得に失敗しました: %w", err)
	}

	now := s.nowFn()
	results := make([]*model.Hearing, 0, len(hearings))
	for _, h := range hearings {
		if !matches(h, filter, now) {
			continue
		}
		results = append(results, h)
	}
	return results, nil
}

// Get は指定IDの公聴会を取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.Hearing, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("公聴会の取得に失敗しました: %w", err)
	}
	if h == nil {
		return nil, model.NewHearingNotFoundError(id)
	}
	return h, nil
}

// Create は公聴会を新規登録する。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Hearing, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, model.NewValidationError("title", "タイトルは必須です")
	}
	if input.Date.IsZero() {
		return nil, model.NewValidationError("date", "開催日は必須です")
	}

	status := input.Status
	if status == "" {
		status = model.HearingStatusScheduled
	}
	if !model.ValidHearingStatus(status) {
		return nil, model.NewValidationError("status", "不正なステータスです")
	}

	now := s.nowFn()
	h := &model.Hearing{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Date:         input.Date,
		StartTime:    strings.TrimSpace(input.StartTime),
		Venue:        strings.TrimSpace(input.Venue),
		Status:       status,
		Participants: model.SplitLines(input.Participants),
		Agenda:       model.SplitLines(input.Agenda),
		Chairperson:  strings.TrimSpace(input.Chairperson),
		VideoURL:     strings.TrimSpace(input.VideoURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("公聴会の作成に失敗しました: %w", err)
	}
	return h, nil
}

// Update は指定IDの公聴会を部分更新する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*model.Hearing, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("公聴会の取得に失敗しました: %w", err)
	}
	if h == nil {
		return nil, model.NewHearingNotFoundError(id)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, model.NewValidationError("title", "タイトルは必須です")
		}
		h.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		h.Description = *input.Description
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, model.NewValidationError("date", "開催日は必須です")
		}
		h.Date = *input.Date
	}
	if input.StartTime != nil {
		h.StartTime = strings.TrimSpace(*input.StartTime)
	}
	if input.Venue != nil {
		h.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.Status != nil {
		if !model.ValidHearingStatus(*input.Status) {
			return nil, model.NewValidationError("status", "不正なステータスです")
		}
		h.Status = *input.Status
	}
	if input.Participants != nil {
		h.Participants = model.SplitLines(*input.Participants)
	}
	if input.Agenda != nil {
		h.Agenda = model.SplitLines(*input.Agenda)
	}
	if input.Chairperson != nil {
		h.Chairperson = strings.TrimSpace(*input.Chairperson)
	}
	if input.VideoURL != nil {
		h.VideoURL = strings.TrimSpace(*input.VideoURL)
	}

	h.UpdatedAt = s.nowFn()

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, fmt.Errorf("公聴会の更新に失敗しました: %w", err)
	}
	return h, nil
}

// Delete は指定IDの公聴会を削除する。存在しないIDでもエラーにならない。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("公聴会の削除に失敗しました: %w", err)
	}
	return nil
}

// matches は公聴会がフィルタ条件をすべて満たすかどうかを判定する。
func matches(h *model.Hearing, filter Filter, now time.Time) bool {
	if filter.Status != "" && filter.Status != "all" && string(h.Status) != filter.Status {
		return false
	}
	switch filter.Tab {
	case TabUpcoming:
		if !h.IsUpcoming(now) {
			return false
		}
	case TabPast:
		if !h.IsPast(now) {
			return false
		}
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		if !containsFold(q, h.Title, h.Description, h.Venue, h.Chairperson) {
			return false
		}
	}
	return true
}

func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
