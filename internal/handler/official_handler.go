package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/official"
)

// ContentWriteRecorder はコンテンツ書き込み操作を記録するインターフェース。
type ContentWriteRecorder interface {
	RecordContentWrite(entity string, op string)
}

// OfficialServiceInterface は議員ハンドラーが必要とするサービスインターフェース。
type OfficialServiceInterface interface {
	List(ctx context.Context, filter official.Filter) ([]*model.Official, error)
	Get(ctx context.Context, id string) (*model.Official, error)
	Create(ctx context.Context, input official.CreateInput) (*model.Official, error)
	Update(ctx context.Context, id string, input official.UpdateInput) (*model.Official, error)
	Delete(ctx context.Context, id string) error
}

// OfficialHandler は議員管理のHTTPハンドラー。
type OfficialHandler struct {
	service OfficialServiceInterface
	metrics ContentWriteRecorder
}

// NewOfficialHandler はOfficialHandlerを生成する。
func NewOfficialHandler(service OfficialServiceInterface, metrics ContentWriteRecorder) *OfficialHandler {
	return &OfficialHandler{service: service, metrics: metrics}
}

type officialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Committee string    `json:"committee"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Bio       string    `json:"bio"`
	ImageURL  string    `json:"image_url"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type createOfficialRequest struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	Committee string `json:"committee"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"image_url"`
	Status    string `json:"status"`
}

type updateOfficialRequest struct {
	Name      *string `json:"name"`
	Position  *string `json:"position"`
	Committee *string `json:"committee"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
	ImageURL  *string `json:"image_url"`
	Status    *string `json:"status"`
}

// ListOfficials は議員一覧を返す。
// GET /api/admin/officials?q=&status=
func (h *OfficialHandler) ListOfficials(w http.ResponseWriter, r *http.Request) {
	filter := official.Filter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	}

	officials, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]officialResponse, 0, len(officials))
	for _, o := range officials {
		results = append(results, toOfficialResponse(o))
	}
	writeJSON(w, http.StatusOK, results)
}

// GetOfficial は議員詳細を返す。
// GET /api/admin/officials/{id}
func (h *OfficialHandler) GetOfficial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOfficialResponse(o))
}

// CreateOfficial は議員を作成する。
// POST /api/admin/officials
func (h *OfficialHandler) CreateOfficial(w http.ResponseWriter, r *http.Request) {
	var req createOfficialRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	o, err := h.service.Create(r.Context(), official.CreateInput{
		Name:      req.Name,
		Position:  req.Position,
		Committee: req.Committee,
		Email:     req.Email,
		Phone:     req.Phone,
		Bio:       req.Bio,
		ImageURL:  req.ImageURL,
		Status:    model.OfficialStatus(req.Status),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("official", "create")
	writeJSON(w, http.StatusCreated, toOfficialResponse(o))
}

// UpdateOfficial は議員を部分更新する。ボディに含まれるフィールドのみ変更する。
// PATCH /api/admin/officials/{id}
func (h *OfficialHandler) UpdateOfficial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateOfficialRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	input := official.UpdateInput{
		Name:      req.Name,
		Position:  req.Position,
		Committee: req.Committee,
		Email:     req.Email,
		Phone:     req.Phone,
		Bio:       req.Bio,
		ImageURL:  req.ImageURL,
	}
	if req.Status != nil {
		status := model.OfficialStatus(*req.Status)
		input.Status = &status
	}

	o, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("official", "update")
	writeJSON(w, http.StatusOK, toOfficialResponse(o))
}

// DeleteOfficial は議員を削除する。存在しないIDでも成功する。
// DELETE /api/admin/officials/{id}
func (h *OfficialHandler) DeleteOfficial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("official", "delete")
	w.WriteHeader(http.StatusNoContent)
}

func toOfficialResponse(o *model.Official) officialResponse {
	return officialResponse{
		ID:        o.ID,
		Name:      o.Name,
		Position:  o.Position,
		Committee: o.Committee,
		Email:     o.Email,
		Phone:     o.Phone,
		Bio:       o.Bio,
		ImageURL:  o.ImageURL,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
