package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/sanggunian/internal/hearing"
	"github.com/hitoshi/sanggunian/internal/model"
)

// HearingServiceInterface は公聴会ハンドラーが必要とするサービスインターフェース。
type HearingServiceInterface interface {
	List(ctx context.Context, filter hearing.Filter) ([]*model.Hearing, error)
	Get(ctx context.Context, id string) (*model.Hearing, error)
	Create(ctx context.Context, input hearing.CreateInput) (*model.Hearing, error)
	Update(ctx context.Context, id string, input hearing.UpdateInput) (*model.Hearing, error)
	Delete(ctx context.Context, id string) error
}

// HearingHandler は公聴会管理のHTTPハンドラー。
type HearingHandler struct {
	service HearingServiceInterface
	metrics ContentWriteRecorder
}

// NewHearingHandler はHearingHandlerを生成する。
func NewHearingHandler(service HearingServiceInterface, metrics ContentWriteRecorder) *HearingHandler {
	return &HearingHandler{service: service, metrics: metrics}
}

type hearingResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Date          time.Time  `json:"date"`
	StartTime     string     `json:"start_time"`
	Venue         string     `json:"venue"`
	Status        string     `json:"status"`
	Participants  []string   `json:"participants"`
	Agenda        []string   `json:"agenda"`
	Chairperson   string     `json:"chairperson"`
	VideoURL      string     `json:"video_url"`
	LinkOK        *bool      `json:"link_ok,omitempty"`
	LinkCheckedAt *time.Time `json:"link_checked_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type createHearingRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"start_time"`
	Venue        string    `json:"venue"`
	Status       string    `json:"status"`
	Participants string    `json:"participants"`
	Agenda       string    `json:"agenda"`
	Chairperson  string    `json:"chairperson"`
	VideoURL     string    `json:"video_url"`
}

type updateHearingRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Date         *time.Time `json:"date"`
	StartTime    *string    `json:"start_time"`
	Venue        *string    `json:"venue"`
	Status       *string    `json:"status"`
	Participants *string    `json:"participants"`
	Agenda       *string    `json:"agenda"`
	Chairperson  *string    `json:"chairperson"`
	VideoURL     *string    `json:"video_url"`
}

// ListHearings は公聴会一覧を返す。
// GET /api/admin/hearings?q=&status=&tab=
func (h *HearingHandler) ListHearings(w http.ResponseWriter, r *http.Request) {
	filter := hearing.Filter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
		Tab:    r.URL.Query().Get("tab"),
	}

	hearings, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]hearingResponse, 0, len(hearings))
	for _, hr := range hearings {
		results = append(results, toHearingResponse(hr))
	}
	writeJSON(w, http.StatusOK, results)
}

// GetHearing は公聴会詳細を返す。
// GET /api/admin/hearings/{id}
func (h *HearingHandler) GetHearing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hr, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHearingResponse(hr))
}

// CreateHearing は公聴会を作成する。
// POST /api/admin/hearings
func (h *HearingHandler) CreateHearing(w http.ResponseWriter, r *http.Request) {
	var req createHearingRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	hr, err := h.service.Create(r.Context(), hearing.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		StartTime:    req.StartTime,
		Venue:        req.Venue,
		Status:       model.HearingStatus(req.Status),
		Participants: req.Participants,
		Agenda:       req.Agenda,
		Chairperson:  req.Chairperson,
		VideoURL:     req.VideoURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("hearing", "create")
	writeJSON(w, http.StatusCreated, toHearingResponse(hr))
}

// UpdateHearing は公聴会を部分更新する。ボディに含まれるフィールドのみ変更する。
// PATCH /api/admin/hearings/{id}
func (h *HearingHandler) UpdateHearing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateHearingRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	input := hearing.UpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		StartTime:    req.StartTime,
		Venue:        req.Venue,
		Participants: req.Participants,
		Agenda:       req.Agenda,
		Chairperson:  req.Chairperson,
		VideoURL:     req.VideoURL,
	}
	if req.Status != nil {
		status := model.HearingStatus(*req.Status)
		input.Status = &status
	}

	hr, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("hearing", "update")
	writeJSON(w, http.StatusOK, toHearingResponse(hr))
}

// DeleteHearing は公聴会を削除する。存在しないIDでも成功する。
// DELETE /api/admin/hearings/{id}
func (h *HearingHandler) DeleteHearing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordContentWrite("hearing", "delete")
	w.WriteHeader(http.StatusNoContent)
}

func toHearingResponse(hr *model.Hearing) hearingResponse {
	return hearingResponse{
		ID:            hr.ID,
		Title:         hr.Title,
		Description:   hr.Description,
		Date:          hr.Date,
		StartTime:     hr.StartTime,
		Venue:         hr.Venue,
		Status:        string(hr.Status),
		Participants:  hr.Participants,
		Agenda:        hr.Agenda,
		Chairperson:   hr.Chairperson,
		VideoURL:      hr.VideoURL,
		LinkOK:        hr.LinkOK,
		LinkCheckedAt: hr.LinkCheckedAt,
		CreatedAt:     hr.CreatedAt,
		UpdatedAt:     hr.UpdatedAt,
	}
}
