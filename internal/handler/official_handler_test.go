package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/official"
)

func TestOfficialHandler_ListOfficials_PassesQueryParams(t *testing.T) {
	svc := &mockOfficialService{
		listFn: func(ctx context.Context, filter official.Filter) ([]*model.Official, error) {
			if filter.Query != "santos" {
				t.Errorf("Query = %q, want %q", filter.Query, "santos")
			}
			if filter.Status != "active" {
				t.Errorf("Status = %q, want %q", filter.Status, "active")
			}
			return []*model.Official{
				{ID: "o1", Name: "Juan Santos", Status: model.OfficialStatusActive},
			}, nil
		},
	}
	h := NewOfficialHandler(svc, &recordedMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/officials?q=santos&status=active", nil)
	w := httptest.NewRecorder()

	h.ListOfficials(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var results []officialResponse
	if err := json.NewDecoder(w.Body).Decode(&results); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results length = %d, want 1", len(results))
	}
	if results[0].Name != "Juan Santos" {
		t.Errorf("name = %q, want %q", results[0].Name, "Juan Santos")
	}
}

func TestOfficialHandler_ListOfficials_EmptyResultIsArray(t *testing.T) {
	h := NewOfficialHandler(&mockOfficialService{}, &recordedMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/officials", nil)
	w := httptest.NewRecorder()

	h.ListOfficials(w, req)

	// 0件でもnullではなく空配列を返す
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want %q", got, "[]\n")
	}
}

func TestOfficialHandler_CreateOfficial(t *testing.T) {
	svc := &mockOfficialService{
		createFn: func(ctx context.Context, input official.CreateInput) (*model.Official, error) {
			if input.Name != "Maria Cruz" {
				t.Errorf("Name = %q, want %q", input.Name, "Maria Cruz")
			}
			if input.Status != model.OfficialStatusActive {
				t.Errorf("Status = %q, want %q", input.Status, model.OfficialStatusActive)
			}
			return &model.Official{ID: "o-new", Name: input.Name, Status: input.Status}, nil
		},
	}
	metrics := &recordedMetrics{}
	h := NewOfficialHandler(svc, metrics)

	body, _ := json.Marshal(map[string]string{
		"name":     "Maria Cruz",
		"position": "Councilor",
		"status":   "active",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/officials", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateOfficial(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if len(metrics.contentWrites) != 1 || metrics.contentWrites[0] != "official:create" {
		t.Errorf("contentWrites = %v, want [official:create]", metrics.contentWrites)
	}
}

func TestOfficialHandler_CreateOfficial_ValidationError(t *testing.T) {
	svc := &mockOfficialService{
		createFn: func(ctx context.Context, input official.CreateInput) (*model.Official, error) {
			return nil, model.NewValidationError("name", "必須です")
		},
	}
	h := NewOfficialHandler(svc, &recordedMetrics{})

	body, _ := json.Marshal(map[string]string{"position": "Councilor"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/officials", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateOfficial(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var errResp apiErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Code != model.ErrCodeValidationFailed {
		t.Errorf("code = %q, want %q", errResp.Code, model.ErrCodeValidationFailed)
	}
}

func TestOfficialHandler_UpdateOfficial_PartialFields(t *testing.T) {
	svc := &mockOfficialService{
		updateFn: func(ctx context.Context, id string, input official.UpdateInput) (*model.Official, error) {
			if id != "o1" {
				t.Errorf("id = %q, want %q", id, "o1")
			}
			if input.Position == nil || *input.Position != "Vice Mayor" {
				t.Errorf("Position = %v, want Vice Mayor", input.Position)
			}
			// ボディに含まれないフィールドはnilのまま渡る
			if input.Name != nil {
				t.Errorf("Name = %v, want nil", input.Name)
			}
			if input.Status != nil {
				t.Errorf("Status = %v, want nil", input.Status)
			}
			return &model.Official{ID: id, Position: *input.Position}, nil
		},
	}
	h := NewOfficialHandler(svc, &recordedMetrics{})

	body, _ := json.Marshal(map[string]string{"position": "Vice Mayor"})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/officials/o1", bytes.NewReader(body))
	req = withChiURLParam(req, "id", "o1")
	w := httptest.NewRecorder()

	h.UpdateOfficial(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestOfficialHandler_GetOfficial_NotFound(t *testing.T) {
	svc := &mockOfficialService{
		getFn: func(ctx context.Context, id string) (*model.Official, error) {
			return nil, model.NewOfficialNotFoundError(id)
		},
	}
	h := NewOfficialHandler(svc, &recordedMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/officials/missing", nil)
	req = withChiURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	h.GetOfficial(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestOfficialHandler_DeleteOfficial(t *testing.T) {
	var deletedID string
	svc := &mockOfficialService{
		deleteFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	metrics := &recordedMetrics{}
	h := NewOfficialHandler(svc, metrics)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/officials/o1", nil)
	req = withChiURLParam(req, "id", "o1")
	w := httptest.NewRecorder()

	h.DeleteOfficial(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if deletedID != "o1" {
		t.Errorf("deleted id = %q, want %q", deletedID, "o1")
	}
	if len(metrics.contentWrites) != 1 || metrics.contentWrites[0] != "official:delete" {
		t.Errorf("contentWrites = %v, want [official:delete]", metrics.contentWrites)
	}
}
