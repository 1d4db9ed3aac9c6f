package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/sanggunian/internal/announcement"
	"github.com/hitoshi/sanggunian/internal/document"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/official"
)

func newTestPublicHandler(
	officials *mockOfficialService,
	documents *mockDocumentService,
	hearings *mockHearingService,
	announcements *mockAnnouncementService,
	committees *mockCommitteeService,
) *PublicHandler {
	if officials == nil {
		officials = &mockOfficialService{}
	}
	if documents == nil {
		documents = &mockDocumentService{}
	}
	if hearings == nil {
		hearings = &mockHearingService{}
	}
	if announcements == nil {
		announcements = &mockAnnouncementService{}
	}
	if committees == nil {
		committees = &mockCommitteeService{}
	}
	return NewPublicHandler(officials, documents, hearings, announcements, committees)
}

func TestPublicHandler_ListOfficials_ForcesActiveStatus(t *testing.T) {
	officials := &mockOfficialService{
		listFn: func(ctx context.Context, filter official.Filter) ([]*model.Official, error) {
			if filter.Status != "active" {
				t.Errorf("Status = %q, want %q", filter.Status, "active")
			}
			return []*model.Official{{ID: "o1", Status: model.OfficialStatusActive}}, nil
		},
	}
	h := newTestPublicHandler(officials, nil, nil, nil, nil)

	// statusクエリパラメータは受け付けず、常にactiveで絞り込む
	req := httptest.NewRequest(http.MethodGet, "/api/public/officials?status=inactive", nil)
	w := httptest.NewRecorder()

	h.ListOfficials(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestPublicHandler_GetOfficial_InactiveIsNotFound(t *testing.T) {
	officials := &mockOfficialService{
		getFn: func(ctx context.Context, id string) (*model.Official, error) {
			return &model.Official{ID: id, Status: model.OfficialStatusInactive}, nil
		},
	}
	h := newTestPublicHandler(officials, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/officials/o1", nil)
	req = withChiURLParam(req, "id", "o1")
	w := httptest.NewRecorder()

	h.GetOfficial(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestPublicHandler_ListDocuments_UsesPublishedList(t *testing.T) {
	var called bool
	documents := &mockDocumentService{
		listPublishedFn: func(ctx context.Context, filter document.Filter) ([]*model.Document, error) {
			called = true
			if filter.Type != "ordinance" {
				t.Errorf("Type = %q, want %q", filter.Type, "ordinance")
			}
			return []*model.Document{
				{ID: "d1", Status: model.DocumentStatusPublished, Type: model.DocumentTypeOrdinance},
			}, nil
		},
	}
	h := newTestPublicHandler(nil, documents, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/documents?type=ordinance", nil)
	w := httptest.NewRecorder()

	h.ListDocuments(w, req)

	if !called {
		t.Error("ListPublished should be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestPublicHandler_GetDocument_DraftIsNotFound(t *testing.T) {
	documents := &mockDocumentService{
		getFn: func(ctx context.Context, id string) (*model.Document, error) {
			return &model.Document{ID: id, Status: model.DocumentStatusDraft}, nil
		},
	}
	h := newTestPublicHandler(nil, documents, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/documents/d1", nil)
	req = withChiURLParam(req, "id", "d1")
	w := httptest.NewRecorder()

	h.GetDocument(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var errResp apiErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Code != model.ErrCodeDocumentNotFound {
		t.Errorf("code = %q, want %q", errResp.Code, model.ErrCodeDocumentNotFound)
	}
}

func TestPublicHandler_GetAnnouncement_ExpiredIsNotFound(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	announcements := &mockAnnouncementService{
		getFn: func(ctx context.Context, id string) (*model.Announcement, error) {
			return &model.Announcement{
				ID:         id,
				Status:     model.AnnouncementStatusPublished,
				ExpiryDate: &expired,
			}, nil
		},
	}
	h := newTestPublicHandler(nil, nil, nil, announcements, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/announcements/a1", nil)
	req = withChiURLParam(req, "id", "a1")
	w := httptest.NewRecorder()

	h.GetAnnouncement(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestPublicHandler_GetAnnouncement_PublishedWithoutExpiry(t *testing.T) {
	announcements := &mockAnnouncementService{
		getFn: func(ctx context.Context, id string) (*model.Announcement, error) {
			return &model.Announcement{
				ID:     id,
				Title:  "定例会のお知らせ",
				Status: model.AnnouncementStatusPublished,
			}, nil
		},
	}
	h := newTestPublicHandler(nil, nil, nil, announcements, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/announcements/a1", nil)
	req = withChiURLParam(req, "id", "a1")
	w := httptest.NewRecorder()

	h.GetAnnouncement(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestPublicHandler_ListAnnouncements_PassesCategory(t *testing.T) {
	announcements := &mockAnnouncementService{
		listPublishedFn: func(ctx context.Context, filter announcement.Filter) ([]*model.Announcement, error) {
			if filter.Category != "meeting" {
				t.Errorf("Category = %q, want %q", filter.Category, "meeting")
			}
			return nil, nil
		},
	}
	h := newTestPublicHandler(nil, nil, nil, announcements, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/announcements?category=meeting", nil)
	w := httptest.NewRecorder()

	h.ListAnnouncements(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestPublicHandler_GetCommittee_InactiveIsNotFound(t *testing.T) {
	committees := &mockCommitteeService{
		getFn: func(ctx context.Context, id string) (*model.Committee, error) {
			return &model.Committee{ID: id, Status: model.CommitteeStatusInactive}, nil
		},
	}
	h := newTestPublicHandler(nil, nil, nil, nil, committees)

	req := httptest.NewRequest(http.MethodGet, "/api/public/committees/c1", nil)
	req = withChiURLParam(req, "id", "c1")
	w := httptest.NewRecorder()

	h.GetCommittee(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
