package linkcheck

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hitoshi/sanggunian/internal/model"
)

// mockGuard はsecurity.SSRFGuardServiceのモック実装。
// テストではhttptestのループバックサーバーに到達できるよう素のクライアントを返す。
type mockGuard struct {
	validateErr map[string]error
}

func (m *mockGuard) NewSafeClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (m *mockGuard) ValidateURL(rawURL string) error {
	if m.validateErr == nil {
		return nil
	}
	return m.validateErr[rawURL]
}

// mockDocStore はDocumentLinkStoreのモック実装。
type mockDocStore struct {
	mu      sync.Mutex
	docs    []*model.Document
	listErr error
	updates map[string]bool
}

func (m *mockDocStore) ListWithFileURL(ctx context.Context) ([]*model.Document, error) {
	return m.docs, m.listErr
}

func (m *mockDocStore) UpdateLinkCheck(ctx context.Context, id string, ok bool, checkedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updates == nil {
		m.updates = map[string]bool{}
	}
	m.updates[id] = ok
	return nil
}

// mockHearingStore はHearingLinkStoreのモック実装。
type mockHearingStore struct {
	mu       sync.Mutex
	hearings []*model.Hearing
	updates  map[string]bool
}

func (m *mockHearingStore) ListWithVideoURL(ctx context.Context) ([]*model.Hearing, error) {
	return m.hearings, nil
}

func (m *mockHearingStore) UpdateLinkCheck(ctx context.Context, id string, ok bool, checkedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updates == nil {
		m.updates = map[string]bool{}
	}
	m.updates[id] = ok
	return nil
}

// mockLinkMetrics はLinkCheckRecorderのモック実装。
type mockLinkMetrics struct {
	mu       sync.Mutex
	outcomes []bool
	latency  int
}

func (m *mockLinkMetrics) RecordLinkCheck(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, ok)
}

func (m *mockLinkMetrics) RecordLinkCheckLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency++
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func TestChecker_RunOnce_MarksOKAndBroken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/alive.pdf":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	docs := &mockDocStore{
		docs: []*model.Document{
			{ID: "d1", FileURL: srv.URL + "/alive.pdf"},
			{ID: "d2", FileURL: srv.URL + "/gone.pdf"},
		},
	}
	hearings := &mockHearingStore{
		hearings: []*model.Hearing{
			{ID: "h1", VideoURL: srv.URL + "/alive.pdf"},
		},
	}
	metrics := &mockLinkMetrics{}

	checker := NewChecker(docs, hearings, &mockGuard{}, newTestLogger(), metrics, Config{
		Timeout:        5 * time.Second,
		MaxConcurrency: 2,
	})

	if err := checker.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	if got := docs.updates["d1"]; !got {
		t.Error("d1 should be marked ok")
	}
	if got := docs.updates["d2"]; got {
		t.Error("d2 should be marked broken")
	}
	if got := hearings.updates["h1"]; !got {
		t.Error("h1 should be marked ok")
	}

	if len(metrics.outcomes) != 3 {
		t.Errorf("outcomes = %d, want 3", len(metrics.outcomes))
	}
}

func TestChecker_RunOnce_SSRFBlockedURLIsBroken(t *testing.T) {
	blockedURL := "http://169.254.169.254/meta"
	docs := &mockDocStore{
		docs: []*model.Document{{ID: "d1", FileURL: blockedURL}},
	}
	guard := &mockGuard{
		validateErr: map[string]error{blockedURL: errors.New("blocked")},
	}
	metrics := &mockLinkMetrics{}

	checker := NewChecker(docs, &mockHearingStore{}, guard, newTestLogger(), metrics, Config{})

	if err := checker.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	if got := docs.updates["d1"]; got {
		t.Error("blocked URL should be marked broken")
	}
	// ガードで拒否されたURLにはリクエストを出さないためレイテンシは記録されない
	if metrics.latency != 0 {
		t.Errorf("latency recorded %d times, want 0", metrics.latency)
	}
}

func TestChecker_RunOnce_HeadRejectedFallsBackToGet(t *testing.T) {
	var sawGet bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sawGet = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	docs := &mockDocStore{
		docs: []*model.Document{{ID: "d1", FileURL: srv.URL + "/file.pdf"}},
	}

	checker := NewChecker(docs, &mockHearingStore{}, &mockGuard{}, newTestLogger(), &mockLinkMetrics{}, Config{})

	if err := checker.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	if !sawGet {
		t.Error("expected GET fallback after HEAD rejection")
	}
	if got := docs.updates["d1"]; !got {
		t.Error("d1 should be marked ok via GET fallback")
	}
}

func TestChecker_RunOnce_NoTargets(t *testing.T) {
	checker := NewChecker(&mockDocStore{}, &mockHearingStore{}, &mockGuard{}, newTestLogger(), &mockLinkMetrics{}, Config{})

	if err := checker.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
}

func TestChecker_RunOnce_ListError(t *testing.T) {
	docs := &mockDocStore{listErr: errors.New("db down")}
	checker := NewChecker(docs, &mockHearingStore{}, &mockGuard{}, newTestLogger(), &mockLinkMetrics{}, Config{})

	if err := checker.RunOnce(context.Background()); err == nil {
		t.Fatal("RunOnce() should return error when listing fails")
	}
}
