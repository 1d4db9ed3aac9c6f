// Package committee は委員会管理のドメインロジックを提供する。
package committee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/repository"
)

// Filter は委員会一覧の絞り込み条件。各条件はANDで結合される。
// Statusが空文字または"all"の場合はステータスで絞り込まない。
type Filter struct {
	Query  string
	Status string
}

// CreateInput は委員会作成の入力。Membersは改行区切りの生テキスト。
type CreateInput struct {
	Name            string
	Description     string
	Chairman        string
	Members         string
	MeetingSchedule string
	Status          model.CommitteeStatus
}

// UpdateInput は委員会更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Name            *string
	Description     *string
	Chairman        *string
	Members         *string
	MeetingSchedule *string
	Status          *model.CommitteeStatus
}

// Service は委員会管理のサービス層。
type Service struct {
	repo repository.CommitteeRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.CommitteeRepository) *Service {
	return &Service{repo: repo}
}

// List はフィルタ条件に一致する委員会を登録順で返す。
func (s *Service) List(ctx context.Context, filter Filter) ([]*model.Committee, error) {
	committees, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("委員会一覧の取得に失敗しました: %w", err)
	}

	results := make([]*model.Committee, 0, len(committees))
	for _, c := range committees {
		if !matches(c, filter) {
			continue
		}
		results = append(results, c)
	}
	return results, nil
}

// Get は指定IDの委員会を取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.Committee, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("委員会の取得に失敗しました: %w", err)
	}
	if c == nil {
		return nil, model.NewCommitteeNotFoundError(id)
	}
	return c, nil
}

// Create は委員会を新規登録する。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Committee, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, model.NewValidationError("name", "委員会名は必須です")
	}

	status := input.Status
	if status == "" {
		status = model.CommitteeStatusActive
	}
	if !model.ValidCommitteeStatus(status) {
		return nil, model.NewValidationError("status", "不正なステータスです")
	}

	now := time.Now()
	c := &model.Committee{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Chairman:        strings.TrimSpace(input.Chairman),
		Members:         model.SplitLines(input.Members),
		MeetingSchedule: strings.TrimSpace(input.MeetingSchedule),
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("委員会の作成に失敗しました: %w", err)
	}
	return c, nil
}

// Update は指定IDの委員会を部分更新する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*model.Committee, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("委員会の取得に失敗しました: %w", err)
	}
	if c == nil {
		return nil, model.NewCommitteeNotFoundError(id)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, model.NewValidationError("name", "委員会名は必須です")
		}
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		c.Description = *input.Description
	}
	if input.Chairman != nil {
		c.Chairman = strings.TrimSpace(*input.Chairman)
	}
	if input.Members != nil {
		c.Members = model.SplitLines(*input.Members)
	}
	if input.MeetingSchedule != nil {
		c.MeetingSchedule = strings.TrimSpace(*input.MeetingSchedule)
	}
	if input.Status != nil {
		if !model.ValidCommitteeStatus(*input.Status) {
			return nil, model.NewValidationError("status", "不正なステータスです")
		}
		c.Status = *input.Status
	}

	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("委員会の更新に失敗しました: %w", err)
	}
	return c, nil
}

// Delete は指定IDの委員会を削除する。存在しないIDでもエラーにならない。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("委員会の削除に失敗しました: %w", err)
	}
	return nil
}

// matches は委員会がフィルタ条件をすべて満たすかどうかを判定する。
func matches(c *model.Committee, filter Filter) bool {
	if filter.Status != "" && filter.Status != "all" && string(c.Status) != filter.Status {
		return false
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		fields := []string{c.Name, c.Description, c.Chairman}
		fields = append(fields, c.Members...)
		if !containsFold(q, fields...) {
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
