package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/sanggunian/internal/announcement"
	"github.com/hitoshi/sanggunian/internal/model"
)

// AnnouncementServiceInterface はお知らせハンドラーが必要とするサービスインターフェース。
type AnnouncementServiceInterface interface {
	List(ctx context.Context, filter announcement.Filter) ([]*model.Announcement, error)
	Get(ctx context.Context, id string) (*model.Announcement, error)
	Create(ctx context.Context, input announcement.CreateInput) (*model.Announcement, error)
	Update(ctx context.Context, id string, input announcement.UpdateInput) (*model.Announcement, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (*model.Announcement, error)
	Archive(ctx context.Context, id string) (*model.Announcement, error)
	SetFeatured(ctx context.Context, id string, featured bool) (*model.Announcement, error)
}

// AnnouncementHandler はお知らせ管理のHTTPハンドラー。
type AnnouncementHandler struct {
	service AnnouncementServiceInterface
	metrics ContentWriteRecorder
}

// NewAnnouncementHandler はAnnouncementHandlerを生成する。
func NewAnnouncementHandler(service AnnouncementServiceInterface, metrics ContentWriteRecorder) *AnnouncementHandler {
	return &AnnouncementHandler{service: service, metrics: metrics}
}

type announcementResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	PublishDate time.Time  `json:"publish_date"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	Author      string     `json:"author"`
	Featured    bool       `json:"featured"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type createAnnouncementRequest struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	PublishDate *time.Time `json:"publish_date"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	Author      string     `json:"author"`
	Featured    bool       `json:"featured"`
	Tags        string     `json:"tags"`
}

type updateAnnouncementRequest struct {
	Title           *string    `json:"title"`
	Content         *string    `json:"content"`
	Category        *string    `json:"category"`
	Priority        *string    `json:"priority"`
	Status          *string    `json:"status"`
	PublishDate     *time.Time `json:"publish_date"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	ClearExpiryDate bool       `json:"clear_expiry_date"`
	Author          *string    `json:"author"`
	Featured        *bool      `json:"featured"`
	Tags            *string    `json:"tags"`
}

type setFeaturedRequest struct {
	Featured *bool `json:"featured"`
}

// ListAnnouncements はお知らせ一覧を返す。
// GET /api/admin/announcements?q=&category=&status=
func (h *AnnouncementHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	filter := announcement.Filter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}

	announcements, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]announcementResponse, 0, len(announcements))
	for _, a := range announcements {
		results = append(results, toAnnouncementResponse(a))
	}
	writeJSON(w, http.StatusOK, results)
}

// GetAnnouncement はお知らせ詳細を返す。
// GET /api/admin/announcements/{id}
func (h *AnnouncementHandler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnnouncementResponse(a))
}

// CreateAnnouncement はお知らせを作成する。Contentは保存前にサニタイズされる。
// POST /api/admin/announcements
func (h *AnnouncementHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	input := announcement.CreateInput{
		Title:      req.Title,
		Content:    req.Content,
		Category:   model.AnnouncementCategory(req.Category),
		Priority:   model.AnnouncementPriority(req.Priority),
		Status:     model.AnnouncementStatus(req.Status),
		ExpiryDate: req.ExpiryDate,
		Author:     req.Author,
		Featured:   req.Featured,
		Tags:       req.Tags,
	}
	if req.PublishDate != nil {
		input.PublishDate = *req.PublishDate
	}

	a, err := h.service.Create(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("announcement", "create")
	writeJSON(w, http.StatusCreated, toAnnouncementResponse(a))
}

// UpdateAnnouncement はお知らせを部分更新する。ボディに含まれるフィールドのみ変更する。
// 有効期限の消去はclear_expiry_date=trueで指示する。
// PATCH /api/admin/announcements/{id}
func (h *AnnouncementHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateAnnouncementRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	input := announcement.UpdateInput{
		Title:           req.Title,
		Content:         req.Content,
		PublishDate:     req.PublishDate,
		ExpiryDate:      req.ExpiryDate,
		ClearExpiryDate: req.ClearExpiryDate,
		Author:          req.Author,
		Featured:        req.Featured,
		Tags:            req.Tags,
	}
	if req.Category != nil {
		category := model.AnnouncementCategory(*req.Category)
		input.Category = &category
	}
	if req.Priority != nil {
		priority := model.AnnouncementPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Status != nil {
		status := model.AnnouncementStatus(*req.Status)
		input.Status = &status
	}

	a, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("announcement", "update")
	writeJSON(w, http.StatusOK, toAnnouncementResponse(a))
}

// DeleteAnnouncement はお知らせを削除する。存在しないIDでも成功する。
// DELETE /api/admin/announcements/{id}
func (h *AnnouncementHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("announcement", "delete")
	w.WriteHeader(http.StatusNoContent)
}

// PublishAnnouncement はお知らせを公開状態に切り替える。
// POST /api/admin/announcements/{id}/publish
func (h *AnnouncementHandler) PublishAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.service.Publish(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("announcement", "publish")
	writeJSON(w, http.StatusOK, toAnnouncementResponse(a))
}

// ArchiveAnnouncement はお知らせをアーカイブ状態に切り替える。
// POST /api/admin/announcements/{id}/archive
func (h *AnnouncementHandler) ArchiveAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.service.Archive(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("announcement", "archive")
	writeJSON(w, http.StatusOK, toAnnouncementResponse(a))
}

// SetFeatured はお知らせの注目フラグを設定する。
// POST /api/admin/announcements/{id}/feature
func (h *AnnouncementHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setFeaturedRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Featured == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("featured", "必須です"))
		return
	}

	a, err := h.service.SetFeatured(r.Context(), id, *req.Featured)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("announcement", "feature")
	writeJSON(w, http.StatusOK, toAnnouncementResponse(a))
}

func toAnnouncementResponse(a *model.Announcement) announcementResponse {
	return announcementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Category:    string(a.Category),
		Priority:    string(a.Priority),
		Status:      string(a.Status),
		PublishDate: a.PublishDate,
		ExpiryDate:  a.ExpiryDate,
		Author:      a.Author,
		Featured:    a.Featured,
		Tags:        a.Tags,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
