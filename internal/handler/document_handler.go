package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/sanggunian/internal/document"
	"github.com/hitoshi/sanggunian/internal/model"
)

// DocumentServiceInterface は文書ハンドラーが必要とするサービスインターフェース。
type DocumentServiceInterface interface {
	List(ctx context.Context, filter document.Filter) ([]*model.Document, error)
	Get(ctx context.Context, id string) (*model.Document, error)
	Create(ctx context.Context, input document.CreateInput) (*model.Document, error)
	Update(ctx context.Context, id string, input document.UpdateInput) (*model.Document, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (*model.Document, error)
	Unpublish(ctx context.Context, id string) (*model.Document, error)
}

// DocumentHandler は条例・決議文書管理のHTTPハンドラー。
type DocumentHandler struct {
	service DocumentServiceInterface
	metrics ContentWriteRecorder
}

// NewDocumentHandler はDocumentHandlerを生成する。
func NewDocumentHandler(service DocumentServiceInterface, metrics ContentWriteRecorder) *DocumentHandler {
	return &DocumentHandler{service: service, metrics: metrics}
}

type documentResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ReferenceNumber string     `json:"reference_number"`
	Type            string     `json:"type"`
	Author          string     `json:"author"`
	Status          string     `json:"status"`
	DateCreated     time.Time  `json:"date_created"`
	DatePublished   *time.Time `json:"date_published,omitempty"`
	Description     string     `json:"description"`
	FileURL         string     `json:"file_url"`
	Tags            []string   `json:"tags"`
	LinkOK          *bool      `json:"link_ok,omitempty"`
	LinkCheckedAt   *time.Time `json:"link_checked_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type createDocumentRequest struct {
	Title           string     `json:"title"`
	ReferenceNumber string     `json:"reference_number"`
	Type            string     `json:"type"`
	Author          string     `json:"author"`
	Status          string     `json:"status"`
	DateCreated     *time.Time `json:"date_created"`
	Description     string     `json:"description"`
	FileURL         string     `json:"file_url"`
	Tags            string     `json:"tags"`
}

type updateDocumentRequest struct {
	Title           *string    `json:"title"`
	ReferenceNumber *string    `json:"reference_number"`
	Type            *string    `json:"type"`
	Author          *string    `json:"author"`
	Status          *string    `json:"status"`
	DateCreated     *time.Time `json:"date_created"`
	Description     *string    `json:"description"`
	FileURL         *string    `json:"file_url"`
	Tags            *string    `json:"tags"`
}

// ListDocuments は文書一覧を返す。
// GET /api/admin/documents?q=&type=&status=
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	filter := document.Filter{
		Query:  r.URL.Query().Get("q"),
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}

	docs, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		results = append(results, toDocumentResponse(d))
	}
	writeJSON(w, http.StatusOK, results)
}

// GetDocument は文書詳細を返す。
// GET /api/admin/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}

// CreateDocument は文書を作成する。
// POST /api/admin/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	input := document.CreateInput{
		Title:           req.Title,
		ReferenceNumber: req.ReferenceNumber,
		Type:            model.DocumentType(req.Type),
		Author:          req.Author,
		Status:          model.DocumentStatus(req.Status),
		Description:     req.Description,
		FileURL:         req.FileURL,
		Tags:            req.Tags,
	}
	if req.DateCreated != nil {
		input.DateCreated = *req.DateCreated
	}

	d, err := h.service.Create(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("document", "create")
	writeJSON(w, http.StatusCreated, toDocumentResponse(d))
}

// UpdateDocument は文書を部分更新する。ボディに含まれるフィールドのみ変更する。
// PATCH /api/admin/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateDocumentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	input := document.UpdateInput{
		Title:           req.Title,
		ReferenceNumber: req.ReferenceNumber,
		Author:          req.Author,
		DateCreated:     req.DateCreated,
		Description:     req.Description,
		FileURL:         req.FileURL,
		Tags:            req.Tags,
	}
	if req.Type != nil {
		docType := model.DocumentType(*req.Type)
		input.Type = &docType
	}
	if req.Status != nil {
		status := model.DocumentStatus(*req.Status)
		input.Status = &status
	}

	d, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("document", "update")
	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}

// DeleteDocument は文書を削除する。存在しないIDでも成功する。
// DELETE /api/admin/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("document", "delete")
	w.WriteHeader(http.StatusNoContent)
}

// PublishDocument は文書を公開状態に切り替える。
// POST /api/admin/documents/{id}/publish
func (h *DocumentHandler) PublishDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.service.Publish(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("document", "publish")
	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}

// UnpublishDocument は文書を下書き状態に戻す。
// POST /api/admin/documents/{id}/unpublish
func (h *DocumentHandler) UnpublishDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.service.Unpublish(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("document", "unpublish")
	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}

func toDocumentResponse(d *model.Document) documentResponse {
	return documentResponse{
		ID:              d.ID,
		Title:           d.Title,
		ReferenceNumber: d.ReferenceNumber,
		Type:            string(d.Type),
		Author:          d.Author,
		Status:          string(d.Status),
		DateCreated:     d.DateCreated,
		DatePublished:   d.DatePublished,
		Description:     d.Description,
		FileURL:         d.FileURL,
		Tags:            d.Tags,
		LinkOK:          d.LinkOK,
		LinkCheckedAt:   d.LinkCheckedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
