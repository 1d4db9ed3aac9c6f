package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/sanggunian/internal/committee"
	"github.com/hitoshi/sanggunian/internal/model"
)

// CommitteeServiceInterface は委員会ハンドラーが必要とするサービスインターフェース。
type CommitteeServiceInterface interface {
	List(ctx context.Context, filter committee.Filter) ([]*model.Committee, error)
	Get(ctx context.Context, id string) (*model.Committee, error)
	Create(ctx context.Context, input committee.CreateInput) (*model.Committee, error)
	Update(ctx context.Context, id string, input committee.UpdateInput) (*model.Committee, error)
	Delete(ctx context.Context, id string) error
}

// CommitteeHandler は委員会管理のHTTPハンドラー。
type CommitteeHandler struct {
	service CommitteeServiceInterface
	metrics ContentWriteRecorder
}

// NewCommitteeHandler はCommitteeHandlerを生成する。
func NewCommitteeHandler(service CommitteeServiceInterface, metrics ContentWriteRecorder) *CommitteeHandler {
	return &CommitteeHandler{service: service, metrics: metrics}
}

type committeeResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Chairman        string    `json:"chairman"`
	Members         []string  `json:"members"`
	MeetingSchedule string    `json:"meeting_schedule"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type createCommitteeRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Chairman        string `json:"chairman"`
	Members         string `json:"members"`
	MeetingSchedule string `json:"meeting_schedule"`
	Status          string `json:"status"`
}

type updateCommitteeRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Chairman        *string `json:"chairman"`
	Members         *string `json:"members"`
	MeetingSchedule *string `json:"meeting_schedule"`
	Status          *string `json:"status"`
}

// ListCommittees は委員会一覧を返す。
// GET /api/admin/committees?q=&status=
func (h *CommitteeHandler) ListCommittees(w http.ResponseWriter, r *http.Request) {
	filter := committee.Filter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	}

	committees, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]committeeResponse, 0, len(committees))
	for _, c := range committees {
		results = append(results, toCommitteeResponse(c))
	}
	writeJSON(w, http.StatusOK, results)
}

// GetCommittee は委員会詳細を返す。
// GET /api/admin/committees/{id}
func (h *CommitteeHandler) GetCommittee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommitteeResponse(c))
}

// CreateCommittee は委員会を作成する。
// POST /api/admin/committees
func (h *CommitteeHandler) CreateCommittee(w http.ResponseWriter, r *http.Request) {
	var req createCommitteeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), committee.CreateInput{
		Name:            req.Name,
		Description:     req.Description,
		Chairman:        req.Chairman,
		Members:         req.Members,
		MeetingSchedule: req.MeetingSchedule,
		Status:          model.CommitteeStatus(req.Status),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("committee", "create")
	writeJSON(w, http.StatusCreated, toCommitteeResponse(c))
}

// UpdateCommittee は委員会を部分更新する。ボディに含まれるフィールドのみ変更する。
// PATCH /api/admin/committees/{id}
func (h *CommitteeHandler) UpdateCommittee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateCommitteeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	input := committee.UpdateInput{
		Name:            req.Name,
		Description:     req.Description,
		Chairman:        req.Chairman,
		Members:         req.Members,
		MeetingSchedule: req.MeetingSchedule,
	}
	if req.Status != nil {
		status := model.CommitteeStatus(*req.Status)
		input.Status = &status
	}

	c, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("committee", "update")
	writeJSON(w, http.StatusOK, toCommitteeResponse(c))
}

// DeleteCommittee は委員会を削除する。存在しないIDでも成功する。
// DELETE /api/admin/committees/{id}
func (h *CommitteeHandler) DeleteCommittee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("committee", "delete")
	w.WriteHeader(http.StatusNoContent)
}

func toCommitteeResponse(c *model.Committee) committeeResponse {
	return committeeResponse{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		Chairman:        c.Chairman,
		Members:         c.Members,
		MeetingSchedule: c.MeetingSchedule,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
