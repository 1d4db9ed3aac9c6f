package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/sanggunian/internal/announcement"
	"github.com/hitoshi/sanggunian/internal/committee"
	"github.com/hitoshi/sanggunian/internal/document"
	"github.com/hitoshi/sanggunian/internal/hearing"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/official"
)

// PublicDocumentService は公開サイトが必要とする文書サービスインターフェース。
type PublicDocumentService interface {
	ListPublished(ctx context.Context, filter document.Filter) ([]*model.Document, error)
	Get(ctx context.Context, id string) (*model.Document, error)
}

// PublicAnnouncementService は公開サイトが必要とするお知らせサービスインターフェース。
type PublicAnnouncementService interface {
	ListPublished(ctx context.Context, filter announcement.Filter) ([]*model.Announcement, error)
	Get(ctx context.Context, id string) (*model.Announcement, error)
}

// PublicHandler は認証不要の公開サイト向けHTTPハンドラー。
// 公開中・活動中のレコードのみを返す。
type PublicHandler struct {
	officials     OfficialServiceInterface
	documents     PublicDocumentService
	hearings      HearingServiceInterface
	announcements PublicAnnouncementService
	committees    CommitteeServiceInterface
	nowFn         func() time.Time
}

// NewPublicHandler はPublicHandlerを生成する。
func NewPublicHandler(
	officials OfficialServiceInterface,
	documents PublicDocumentService,
	hearings HearingServiceInterface,
	announcements PublicAnnouncementService,
	committees CommitteeServiceInterface,
) *PublicHandler {
	return &PublicHandler{
		officials:     officials,
		documents:     documents,
		hearings:      hearings,
		announcements: announcements,
		committees:    committees,
		nowFn:         time.Now,
	}
}

// ListOfficials は在任中の議員一覧を返す。
// GET /api/public/officials?q=
func (h *PublicHandler) ListOfficials(w http.ResponseWriter, r *http.Request) {
	officials, err := h.officials.List(r.Context(), official.Filter{
		Query:  r.URL.Query().Get("q"),
		Status: string(model.OfficialStatusActive),
	})
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

// GetOfficial は在任中の議員の詳細を返す。退任済みの議員は404を返す。
// GET /api/public/officials/{id}
func (h *PublicHandler) GetOfficial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, err := h.officials.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if o.Status != model.OfficialStatusActive {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewOfficialNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, toOfficialResponse(o))
}

// ListDocuments は公開済み文書の一覧を返す。
// GET /api/public/documents?q=&type=
func (h *PublicHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.ListPublished(r.Context(), document.Filter{
		Query: r.URL.Query().Get("q"),
		Type:  r.URL.Query().Get("type"),
	})
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

// GetDocument は公開済み文書の詳細を返す。未公開の文書は404を返す。
// GET /api/public/documents/{id}
func (h *PublicHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.documents.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if d.Status != model.DocumentStatusPublished {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewDocumentNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}

// ListHearings は公聴会一覧を返す。tabで「今後の開催」「過去の開催」を切り替える。
// GET /api/public/hearings?q=&tab=
func (h *PublicHandler) ListHearings(w http.ResponseWriter, r *http.Request) {
	hearings, err := h.hearings.List(r.Context(), hearing.Filter{
		Query: r.URL.Query().Get("q"),
		Tab:   r.URL.Query().Get("tab"),
	})
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

// GetHearing は公聴会の詳細を返す。
// GET /api/public/hearings/{id}
func (h *PublicHandler) GetHearing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hr, err := h.hearings.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHearingResponse(hr))
}

// ListAnnouncements は公開中かつ有効期限内のお知らせ一覧を返す。
// GET /api/public/announcements?q=&category=
func (h *PublicHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcements.ListPublished(r.Context(), announcement.Filter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	})
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

// GetAnnouncement は公開中のお知らせの詳細を返す。
// 下書き・アーカイブ済み・有効期限切れのお知らせは404を返す。
// GET /api/public/announcements/{id}
func (h *PublicHandler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.announcements.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if a.Status != model.AnnouncementStatusPublished ||
		(a.ExpiryDate != nil && a.ExpiryDate.Before(h.nowFn())) {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewAnnouncementNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, toAnnouncementResponse(a))
}

// ListCommittees は活動中の委員会一覧を返す。
// GET /api/public/committees?q=
func (h *PublicHandler) ListCommittees(w http.ResponseWriter, r *http.Request) {
	committees, err := h.committees.List(r.Context(), committee.Filter{
		Query:  r.URL.Query().Get("q"),
		Status: string(model.CommitteeStatusActive),
	})
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

// GetCommittee は活動中の委員会の詳細を返す。休止中の委員会は404を返す。
// GET /api/public/committees/{id}
func (h *PublicHandler) GetCommittee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.committees.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if c.Status != model.CommitteeStatusActive {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewCommitteeNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, toCommitteeResponse(c))
}
