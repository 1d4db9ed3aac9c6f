// Package announcement はお知らせ管理のドメインロジックを提供する。
package announcement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/repository"
	"github.com/hitoshi/sanggunian/internal/security"
)

// Filter はお知らせ一覧の絞り込み条件。各条件はANDで結合される。
// CategoryとStatusは空文字または"all"の場合その条件で絞り込まない。
type Filter struct {
	Query    string
	Category string
	Status   string
}

// CreateInput はお知らせ作成の入力。Tagsはカンマ区切りの生テキスト。
// Contentは生HTMLを受け取り、保存前にサニタイズされる。
type CreateInput struct {
	Title       string
	Content     string
	Category    model.AnnouncementCategory
	Priority    model.AnnouncementPriority
	Status      model.AnnouncementStatus
	PublishDate time.Time
	ExpiryDate  *time.Time
	Author      string
	Featured    bool
	Tags        string
}

// UpdateInput はお知らせ更新の入力。nilのフィールドは変更しない。
// ExpiryDateの消去はClearExpiryDateで指示する。
type UpdateInput struct {
	Title           *string
	Content         *string
	Category        *model.AnnouncementCategory
	Priority        *model.AnnouncementPriority
	Status          *model.AnnouncementStatus
	PublishDate     *time.Time
	ExpiryDate      *time.Time
	ClearExpiryDate bool
	Author          *string
	Featured        *bool
	Tags            *string
}

// Service はお知らせ管理のサービス層。
type Service struct {
	repo      repository.AnnouncementRepository
	sanitizer security.ContentSanitizerService
	nowFn     func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.AnnouncementRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{repo: repo, sanitizer: sanitizer, nowFn: time.Now}
}

// List はフィルタ条件に一致するお知らせを登録順で返す。
func (s *Service) List(ctx context.Context, filter Filter) ([]*model.Announcement, error) {
	announcements, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("お知らせ一覧の取得に失敗しました: %w", err)
	}

	results := make([]*model.Announcement, 0, len(announcements))
	for _, a := range announcements {
		if !matches(a, filter) {
			continue
		}
		results = append(results, a)
	}
	return results, nil
}

// ListPublished は公開中かつ有効期限内のお知らせのみを返す。公開サイト・RSS向け。
func (s *Service) ListPublished(ctx context.Context, filter Filter) ([]*model.Announcement, error) {
	filter.Status = string(model.AnnouncementStatusPublished)
	announcements, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	results := make([]*model.Announcement, 0, len(announcements))
	for _, a := range announcements {
		if a.ExpiryDate != nil && a.ExpiryDate.Before(now) {
			continue
		}
		results = append(results, a)
	}
	return results, nil
}

// Get は指定IDのお知らせを取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("お知らせの取得に失敗しました: %w", err)
	}
	if a == nil {
		return nil, model.NewAnnouncementNotFoundError(id)
	}
	return a, nil
}

// Create はお知らせを新規登録する。Contentはサニタイズしてから保存する。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Announcement, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, model.NewValidationError("title", "タイトルは必須です")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, model.NewValidationError("content", "本文は必須です")
	}

	category := input.Category
	if category == "" {
		category = model.AnnouncementCategoryGeneral
	}
	if !model.ValidAnnouncementCategory(category) {
		return nil, model.NewValidationError("category", "不正なカテゴリです")
	}

	priority := input.Priority
	if priority == "" {
		priority = model.AnnouncementPriorityMedium
	}
	if !model.ValidAnnouncementPriority(priority) {
		return nil, model.NewValidationError("priority", "不正な優先度です")
	}

	status := input.Status
	if status == "" {
		status = model.AnnouncementStatusDraft
	}
	if !model.ValidAnnouncementStatus(status) {
		return nil, model.NewValidationError("status", "不正なステータスです")
	}

	now := s.nowFn()
	publishDate := input.PublishDate
	if publishDate.IsZero() {
		publishDate = now
	}

	a := &model.Announcement{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Content:     s.sanitizer.Sanitize(input.Content),
		Category:    category,
		Priority:    priority,
		Status:      status,
		PublishDate: publishDate,
		ExpiryDate:  input.ExpiryDate,
		Author:      strings.TrimSpace(input.Author),
		Featured:    input.Featured,
		Tags:        model.SplitTags(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("お知らせの作成に失敗しました: %w", err)
	}
	return a, nil
}

// Update は指定IDのお知らせを部分更新する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*model.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("お知らせの取得に失敗しました: %w", err)
	}
	if a == nil {
		return nil, model.NewAnnouncementNotFoundError(id)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, model.NewValidationError("title", "タイトルは必須です")
		}
		a.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, model.NewValidationError("content", "本文は必須です")
		}
		a.Content = s.sanitizer.Sanitize(*input.Content)
	}
	if input.Category != nil {
		if !model.ValidAnnouncementCategory(*input.Category) {
			return nil, model.NewValidationError("category", "不正なカテゴリです")
		}
		a.Category = *input.Category
	}
	if input.Priority != nil {
		if !model.ValidAnnouncementPriority(*input.Priority) {
			return nil, model.NewValidationError("priority", "不正な優先度です")
		}
		a.Priority = *input.Priority
	}
	if input.Status != nil {
		if !model.ValidAnnouncementStatus(*input.Status) {
			return nil, model.NewValidationError("status", "不正なステータスです")
		}
		a.Status = *input.Status
	}
	if input.PublishDate != nil {
		a.PublishDate = *input.PublishDate
	}
	if input.ClearExpiryDate {
		a.ExpiryDate = nil
	} else if input.ExpiryDate != nil {
		a.ExpiryDate = input.ExpiryDate
	}
	if input.Author != nil {
		a.Author = strings.TrimSpace(*input.Author)
	}
	if input.Featured != nil {
		a.Featured = *input.Featured
	}
	if input.Tags != nil {
		a.Tags = model.SplitTags(*input.Tags)
	}

	a.UpdatedAt = s.nowFn()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("お知らせの更新に失敗しました: %w", err)
	}
	return a, nil
}

// Delete は指定IDのお知らせを削除する。存在しないIDでもエラーにならない。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("お知らせの削除に失敗しました: %w", err)
	}
	return nil
}

// Publish はお知らせをpublished状態に切り替える。
func (s *Service) Publish(ctx context.Context, id string) (*model.Announcement, error) {
	status := model.AnnouncementStatusPublished
	return s.Update(ctx, id, UpdateInput{Status: &status})
}

// Archive はお知らせをarchived状態に切り替える。
func (s *Service) Archive(ctx context.Context, id string) (*model.Announcement, error) {
	status := model.AnnouncementStatusArchived
	return s.Update(ctx, id, UpdateInput{Status: &status})
}

// SetFeatured はお知らせの注目フラグを切り替える。
func (s *Service) SetFeatured(ctx context.Context, id string, featured bool) (*model.Announcement, error) {
	return s.Update(ctx, id, UpdateInput{Featured: &featured})
}

// matches はお知らせがフィルタ条件をすべて満たすかどうかを判定する。
func matches(a *model.Announcement, filter Filter) bool {
	if filter.Category != "" && filter.Category != "all" && string(a.Category) != filter.Category {
		return false
	}
	if filter.Status != "" && filter.Status != "all" && string(a.Status) != filter.Status {
		return false
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		fields := []string{a.Title, a.Content, a.Author}
		fields = append(fields, a.Tags...)
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
