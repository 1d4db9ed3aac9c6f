package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/sanggunian/internal/hearing"
	"github.com/hitoshi/sanggunian/internal/model"
)

func TestHearingHandler_ListHearings_PassesTabParam(t *testing.T) {
	svc := &mockHearingService{
		listFn: func(ctx context.Context, filter hearing.Filter) ([]*model.Hearing, error) {
			if filter.Tab != "upcoming" {
				t.Errorf("Tab = %q, want %q", filter.Tab, "upcoming")
			}
			if filter.Query != "zoning" {
				t.Errorf("Query = %q, want %q", filter.Query, "zoning")
			}
			return []*model.Hearing{
				{ID: "h1", Title: "Zoning Hearing", Status: model.HearingStatusScheduled},
			}, nil
		},
	}
	h := NewHearingHandler(svc, &recordedMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/hearings?q=zoning&tab=upcoming", nil)
	w := httptest.NewRecorder()

	h.ListHearings(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var results []hearingResponse
	if err := json.NewDecoder(w.Body).Decode(&results); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results length = %d, want 1", len(results))
	}
	if results[0].Title != "Zoning Hearing" {
		t.Errorf("title = %q, want %q", results[0].Title, "Zoning Hearing")
	}
}

func TestHearingHandler_ListHearings_EmptyResultIsArray(t *testing.T) {
	h := NewHearingHandler(&mockHearingService{}, &recordedMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/hearings", nil)
	w := httptest.NewRecorder()

	h.ListHearings(w, req)

	// 0件でもnullではなく空配列を返す
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want %q", got, "[]\n")
	}
}

func TestHearingHandler_CreateHearing_PassesRawListFields(t *testing.T) {
	svc := &mockHearingService{
		createFn: func(ctx context.Context, input hearing.CreateInput) (*model.Hearing, error) {
			// 改行区切りリストの正規化はサービス層の責務。ハンドラーは生のまま渡す
			if input.Participants != "Mayor\nCouncilors\n" {
				t.Errorf("Participants = %q, want raw newline text", input.Participants)
			}
			if input.Agenda != "Opening remarks\nPublic comments" {
				t.Errorf("Agenda = %q, want raw newline text", input.Agenda)
			}
			if input.Status != model.HearingStatusScheduled {
				t.Errorf("Status = %q, want %q", input.Status, model.HearingStatusScheduled)
			}
			return &model.Hearing{ID: "h-new", Title: input.Title}, nil
		},
	}
	metrics := &recordedMetrics{}
	h := NewHearingHandler(svc, metrics)

	body, _ := json.Marshal(map[string]interface{}{
		"title":        "Public Hearing on Market Ordinance",
		"date":         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		"start_time":   "09:00",
		"venue":        "Session Hall",
		"status":       "scheduled",
		"participants": "Mayor\nCouncilors\n",
		"agenda":       "Opening remarks\nPublic comments",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/hearings", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateHearing(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if len(metrics.contentWrites) != 1 || metrics.contentWrites[0] != "hearing:create" {
		t.Errorf("contentWrites = %v, want [hearing:create]", metrics.contentWrites)
	}
}

func TestHearingHandler_UpdateHearing_StatusPointerConversion(t *testing.T) {
	svc := &mockHearingService{
		updateFn: func(ctx context.Context, id string, input hearing.UpdateInput) (*model.Hearing, error) {
			if input.Status == nil || *input.Status != model.HearingStatusCompleted {
				t.Errorf("Status = %v, want completed", input.Status)
			}
			// ボディに含まれないフィールドはnilのまま渡る
			if input.Title != nil {
				t.Errorf("Title = %v, want nil", input.Title)
			}
			return &model.Hearing{ID: id, Status: *input.Status}, nil
		},
	}
	h := NewHearingHandler(svc, &recordedMetrics{})

	body, _ := json.Marshal(map[string]string{"status": "completed"})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/hearings/h1", bytes.NewReader(body))
	req = withChiURLParam(req, "id", "h1")
	w := httptest.NewRecorder()

	h.UpdateHearing(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestHearingHandler_GetHearing_NotFound(t *testing.T) {
	svc := &mockHearingService{
		getFn: func(ctx context.Context, id string) (*model.Hearing, error) {
			return nil, model.NewHearingNotFoundError(id)
		},
	}
	h := NewHearingHandler(svc, &recordedMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/hearings/missing", nil)
	req = withChiURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	h.GetHearing(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHearingHandler_DeleteHearing(t *testing.T) {
	var deletedID string
	svc := &mockHearingService{
		deleteFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	metrics := &recordedMetrics{}
	h := NewHearingHandler(svc, metrics)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/hearings/h1", nil)
	req = withChiURLParam(req, "id", "h1")
	w := httptest.NewRecorder()

	h.DeleteHearing(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if deletedID != "h1" {
		t.Errorf("deleted id = %q, want %q", deletedID, "h1")
	}
	if len(metrics.contentWrites) != 1 || metrics.contentWrites[0] != "hearing:delete" {
		t.Errorf("contentWrites = %v, want [hearing:delete]", metrics.contentWrites)
	}
}
