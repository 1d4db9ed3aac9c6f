// Package document は条例・決議文書管理のドメインロジックを提供する。
package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/repository"
)

// Filter は文書一覧の絞り込み条件。各条件はANDで結合される。
// TypeとStatusは空文字または"all"の場合その条件で絞り込まない。
type Filter struct {
	Query  string
	Type   string
	Status string
}

// CreateInput は文書作成の入力。Tagsはカンマ区切りの生テキスト。
type CreateInput struct {
	Title           string
	ReferenceNumber string
	Type            model.DocumentType
	Author          string
	Status          model.DocumentStatus
	DateCreated     time.Time
	Description     string
	FileURL         string
	Tags            string
}

// UpdateInput は文書更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Title           *string
	ReferenceNumber *string
	Type            *model.DocumentType
	Author          *string
	Status          *model.DocumentStatus
	DateCreated     *time.Time
	Description     *string
	FileURL         *string
	Tags            *string
}

// Service は文書管理のサービス層。
type Service struct {
	repo repository.DocumentRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.DocumentRepository) *Service {
	return &Service{repo: repo}
}

// List はフィルタ条件に一致する文書を登録順で返す。
func (s *Service) List(ctx context.Context, filter Filter) ([]*model.Document, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("文書一覧の取得に失敗しました: %w", err)
	}

	results := make([]*model.Document, 0, len(docs))
	for _, d := range docs {
		if !matches(d, filter) {
			continue
		}
		results = append(results, d)
	}
	return results, nil
}

// ListPublished は公開済み文書のみを返す。公開サイト向け。
func (s *Service) ListPublished(ctx context.Context, filter Filter) ([]*model.Document, error) {
	filter.Status = string(model.DocumentStatusPublished)
	return s.List(ctx, filter)
}

// Get は指定IDの文書を取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.Document, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("文書の取得に失敗しました: %w", err)
	}
	if d == nil {
		return nil, model.NewDocumentNotFoundError(id)
	}
	return d, nil
}

// Create は文書を新規登録する。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Document, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, model.NewValidationError("title", "タイトルは必須です")
	}
	if !model.ValidDocumentType(input.Type) {
		return nil, model.NewValidationError("type", "不正な文書種別です")
	}

	status := input.Status
	if status == "" {
		status = model.DocumentStatusDraft
	}
	if !model.ValidDocumentStatus(status) {
		return nil, model.NewValidationError("status", "不正なステータスです")
	}

	now := time.Now()
	dateCreated := input.DateCreated
	if dateCreated.IsZero() {
		dateCreated = now
	}

	d := &model.Document{
		ID:              uuid.New().String(),
		Title:           strings.TrimSpace(input.Title),
		ReferenceNumber: strings.TrimSpace(input.ReferenceNumber),
		Type:            input.Type,
		Author:          strings.TrimSpace(input.Author),
		Status:          status,
		DateCreated:     dateCreated,
		Description:     input.Description,
		FileURL:         strings.TrimSpace(input.FileURL),
		Tags:            model.SplitTags(input.Tags),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if status == model.DocumentStatusPublished {
		d.DatePublished = &now
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("文書の作成に失敗しました: %w", err)
	}
	return d, nil
}

// Update は指定IDの文書を部分更新する。
// statusをpublishedに変更した場合はdatePublishedを刻印する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*model.Document, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("文書の取得に失敗しました: %w", err)
	}
	if d == nil {
		return nil, model.NewDocumentNotFoundError(id)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, model.NewValidationError("title", "タイトルは必須です")
		}
		d.Title = strings.TrimSpace(*input.Title)
	}
	if input.ReferenceNumber != nil {
		d.ReferenceNumber = strings.TrimSpace(*input.ReferenceNumber)
	}
	if input.Type != nil {
		if !model.ValidDocumentType(*input.Type) {
			return nil, model.NewValidationError("type", "不正な文書種別です")
		}
		d.Type = *input.Type
	}
	if input.Author != nil {
		d.Author = strings.TrimSpace(*input.Author)
	}
	if input.Status != nil {
		if !model.ValidDocumentStatus(*input.Status) {
			return nil, model.NewValidationError("status", "不正なステータスです")
		}
		if *input.Status == model.DocumentStatusPublished && d.Status != model.DocumentStatusPublished {
			now := time.Now()
			d.DatePublished = &now
		}
		d.Status = *input.Status
	}
	if input.DateCreated != nil {
		d.DateCreated = *input.DateCreated
	}
	if input.Description != nil {
		d.Description = *input.Description
	}
	if input.FileURL != nil {
		d.FileURL = strings.TrimSpace(*input.FileURL)
	}
	if input.Tags != nil {
		d.Tags = model.SplitTags(*input.Tags)
	}

	d.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("文書の更新に失敗しました: %w", err)
	}
	return d, nil
}

// Delete は指定IDの文書を削除する。存在しないIDでもエラーにならない。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("文書の削除に失敗しました: %w", err)
	}
	return nil
}

// Publish は文書をpublished状態に切り替え、公開日時を刻印する。
func (s *Service) Publish(ctx context.Context, id string) (*model.Document, error) {
	status := model.DocumentStatusPublished
	return s.Update(ctx, id, UpdateInput{Status: &status})
}

// Unpublish は公開済み文書をdraft状態に戻す。公開日時はクリアされる。
func (s *Service) Unpublish(ctx context.Context, id string) (*model.Document, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("文書の取得に失敗しました: %w", err)
	}
	if d == nil {
		return nil, model.NewDocumentNotFoundError(id)
	}

	d.Status = model.DocumentStatusDraft
	d.DatePublished = nil
	d.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("文書の更新に失敗しました: %w", err)
	}
	return d, nil
}

// matches は文書がフィルタ条件をすべて満たすかどうかを判定する。
func matches(d *model.Document, filter Filter) bool {
	if filter.Type != "" && filter.Type != "all" && string(d.Type) != filter.Type {
		return false
	}
	if filter.Status != "" && filter.Status != "all" && string(d.Status) != filter.Status {
		return false
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		fields := []string{d.Title, d.ReferenceNumber, d.Author, d.Description}
		fields = append(fields, d.Tags...)
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
