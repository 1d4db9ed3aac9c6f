package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/sanggunian/internal/announcement"
	"github.com/hitoshi/sanggunian/internal/model"
)

func TestAnnouncementHandler_UpdateAnnouncement_ClearExpiryDate(t *testing.T) {
	svc := &mockAnnouncementService{
		updateFn: func(ctx context.Context, id string, input announcement.UpdateInput) (*model.Announcement, error) {
			if !input.ClearExpiryDate {
				t.Error("ClearExpiryDate = false, want true")
			}
			if input.ExpiryDate != nil {
				t.Errorf("ExpiryDate = %v, want nil", input.ExpiryDate)
			}
			return &model.Announcement{ID: id}, nil
		},
	}
	h := NewAnnouncementHandler(svc, &recordedMetrics{})

	body, _ := json.Marshal(map[string]any{"clear_expiry_date": true})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/announcements/a1", bytes.NewReader(body))
	req = withChiURLParam(req, "id", "a1")
	w := httptest.NewRecorder()

	h.UpdateAnnouncement(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAnnouncementHandler_PublishAnnouncement(t *testing.T) {
	var publishedID string
	svc := &mockAnnouncementService{
		publishFn: func(ctx context.Context, id string) (*model.Announcement, error) {
			publishedID = id
			return &model.Announcement{ID: id, Status: model.AnnouncementStatusPublished}, nil
		},
	}
	metrics := &recordedMetrics{}
	h := NewAnnouncementHandler(svc, metrics)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/announcements/a1/publish", nil)
	req = withChiURLParam(req, "id", "a1")
	w := httptest.NewRecorder()

	h.PublishAnnouncement(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if publishedID != "a1" {
		t.Errorf("published id = %q, want %q", publishedID, "a1")
	}

	var result announcementResponse
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Status != "published" {
		t.Errorf("status = %q, want %q", result.Status, "published")
	}
	if len(metrics.contentWrites) != 1 || metrics.contentWrites[0] != "announcement:publish" {
		t.Errorf("contentWrites = %v, want [announcement:publish]", metrics.contentWrites)
	}
}

func TestAnnouncementHandler_ArchiveAnnouncement_NotFound(t *testing.T) {
	svc := &mockAnnouncementService{
		archiveFn: func(ctx context.Context, id string) (*model.Announcement, error) {
			return nil, model.NewAnnouncementNotFoundError(id)
		},
	}
	h := NewAnnouncementHandler(svc, &recordedMetrics{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/announcements/missing/archive", nil)
	req = withChiURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	h.ArchiveAnnouncement(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAnnouncementHandler_SetFeatured(t *testing.T) {
	var gotFeatured bool
	svc := &mockAnnouncementService{
		setFeaturedFn: func(ctx context.Context, id string, featured bool) (*model.Announcement, error) {
			gotFeatured = featured
			return &model.Announcement{ID: id, Featured: featured}, nil
		},
	}
	h := NewAnnouncementHandler(svc, &recordedMetrics{})

	body, _ := json.Marshal(map[string]bool{"featured": true})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/announcements/a1/feature", bytes.NewReader(body))
	req = withChiURLParam(req, "id", "a1")
	w := httptest.NewRecorder()

	h.SetFeatured(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !gotFeatured {
		t.Error("featured = false, want true")
	}
}

func TestAnnouncementHandler_SetFeatured_MissingField(t *testing.T) {
	h := NewAnnouncementHandler(&mockAnnouncementService{}, &recordedMetrics{})

	body, _ := json.Marshal(map[string]any{})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/announcements/a1/feature", bytes.NewReader(body))
	req = withChiURLParam(req, "id", "a1")
	w := httptest.NewRecorder()

	h.SetFeatured(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAnnouncementHandler_CreateAnnouncement_PassesExpiryDate(t *testing.T) {
	expiry := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	svc := &mockAnnouncementService{
		createFn: func(ctx context.Context, input announcement.CreateInput) (*model.Announcement, error) {
			if input.ExpiryDate == nil || !input.ExpiryDate.Equal(expiry) {
				t.Errorf("ExpiryDate = %v, want %v", input.ExpiryDate, expiry)
			}
			if input.Category != model.AnnouncementCategoryAlert {
				t.Errorf("Category = %q, want %q", input.Category, model.AnnouncementCategoryAlert)
			}
			return &model.Announcement{ID: "a-new"}, nil
		},
	}
	h := NewAnnouncementHandler(svc, &recordedMetrics{})

	body, _ := json.Marshal(map[string]any{
		"title":       "道路封鎖のお知らせ",
		"content":     "<p>本文</p>",
		"category":    "alert",
		"expiry_date": expiry.Format(time.RFC3339),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/announcements", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateAnnouncement(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
}
