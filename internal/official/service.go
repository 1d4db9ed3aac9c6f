// Package official は議員情報管理のドメインロジックを提供する。
package official

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/repository"
)

// Filter は議員一覧の絞り込み条件。各条件はANDで結合される。
// Statusが空文字または"all"の場合はステータスで絞り込まない。
type Filter struct {
	Query  string
	Status string
}

// CreateInput は議員作成の入力。
type CreateInput struct {
	Name      string
	Position  string
	Committee string
	Email     string
	Phone     string
	Bio       string
	ImageURL  string
	Status    model.OfficialStatus
}

// UpdateInput は議員更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Name      *string
	Position  *string
	Committee *string
	Email     *string
	Phone     *string
	Bio       *string
	ImageURL  *string
	Status    *model.OfficialStatus
}

// Service は議員管理のサービス層。
type Service struct {
	repo repository.OfficialRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.OfficialRepository) *Service {
	return &Service{repo: repo}
}

// List はフィルタ条件に一致する議員を登録順で返す。
func (s *Service) List(ctx context.Context, filter Filter) ([]*model.Official, error) {
	officials, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("議員一覧の取得に失敗しました: %w", err)
	}

	results := make([]*model.Official, 0, len(officials))
	for _, o := range officials {
		if !matches(o, filter) {
			continue
		}
		results = append(results, o)
	}
	return results, nil
}

// Get は指定IDの議員を取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.Official, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("議員の取得に失敗しました: %w", err)
	}
	if o == nil {
		return nil, model.NewOfficialNotFoundError(id)
	}
	return o, nil
}

// Create は議員を新規登録する。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Official, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, model.NewValidationError("name", "名前は必須です")
	}
	if strings.TrimSpace(input.Position) == "" {
		return nil, model.NewValidationError("position", "役職は必須です")
	}

	status := input.Status
	if status == "" {
		status = model.OfficialStatusActive
	}
	if !model.ValidOfficialStatus(status) {
		return nil, model.NewValidationError("status", "不正なステータスです")
	}

	now := time.Now()
	o := &model.Official{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		Position:  strings.TrimSpace(input.Position),
		Committee: strings.TrimSpace(input.Committee),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Bio:       input.Bio,
		ImageURL:  strings.TrimSpace(input.ImageURL),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("議員の作成に失敗しました: %w", err)
	}
	return o, nil
}

// Update は指定IDの議員を部分更新する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*model.Official, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("議員の取得に失敗しました: %w", err)
	}
	if o == nil {
		return nil, model.NewOfficialNotFoundError(id)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, model.NewValidationError("name", "名前は必須です")
		}
		o.Name = strings.TrimSpace(*input.Name)
	}
	if input.Position != nil {
		if strings.TrimSpace(*input.Position) == "" {
			return nil, model.NewValidationError("position", "役職は必須です")
		}
		o.Position = strings.TrimSpace(*input.Position)
	}
	if input.Committee != nil {
		o.Committee = strings.TrimSpace(*input.Committee)
	}
	if input.Email != nil {
		o.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		o.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Bio != nil {
		o.Bio = *input.Bio
	}
	if input.ImageURL != nil {
		o.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Status != nil {
		if !model.ValidOfficialStatus(*input.Status) {
			return nil, model.NewValidationError("status", "不正なステータスです")
		}
		o.Status = *input.Status
	}

	o.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("議員の更新に失敗しました: %w", err)
	}
	return o, nil
}

// Delete は指定IDの議員を削除する。存在しないIDでもエラーにならない。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("議員の削除に失敗しました: %w", err)
	}
	return nil
}

// matches は議員がフィルタ条件をすべて満たすかどうかを判定する。
func matches(o *model.Official, filter Filter) bool {
	if filter.Status != "" && filter.Status != "all" && string(o.Status) != filter.Status {
		return false
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		if !containsFold(q, o.Name, o.Position, o.Committee, o.Email, o.Bio) {
			return false
		}
	}
	return true
}

// containsFold はいずれかのフィールドにqが部分一致（大文字小文字無視）するか判定する。
func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
