package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/sanggunian/internal/announcement"
	"github.com/hitoshi/sanggunian/internal/committee"
	"github.com/hitoshi/sanggunian/internal/document"
	"github.com/hitoshi/sanggunian/internal/hearing"
	"github.com/hitoshi/sanggunian/internal/middleware"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/official"
)

// --- テスト用ヘルパー ---

// withUser はリクエストコンテキストに認証済みユーザーを注入する。
func withUser(r *http.Request, userID string, role model.Role) *http.Request {
	ctx := middleware.ContextWithUser(r.Context(), userID, role)
	return r.WithContext(ctx)
}

// withChiURLParam はchiのURLパラメータをリクエストコンテキストに注入する。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// --- メトリクスモック ---

// recordedMetrics はハンドラーから記録されたメトリクス呼び出しを捕捉する。
type recordedMetrics struct {
	mu            sync.Mutex
	loginOutcomes []bool
	contentWrites []string // "entity:op" 形式
}

func (m *recordedMetrics) RecordLogin(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginOutcomes = append(m.loginOutcomes, success)
}

func (m *recordedMetrics) RecordContentWrite(entity, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contentWrites = append(m.contentWrites, entity+":"+op)
}

var (
	_ LoginRecorder        = (*recordedMetrics)(nil)
	_ ContentWriteRecorder = (*recordedMetrics)(nil)
)

// --- サービスモック ---

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	loginFn          func(ctx context.Context, email, password string) (*model.Session, error)
	logoutFn         func(ctx context.Context, sessionID string) error
	getCurrentUserFn func(ctx context.Context, sessionID string) (*model.User, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return &model.Session{}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if m.getCurrentUserFn != nil {
		return m.getCurrentUserFn(ctx, sessionID)
	}
	return &model.User{}, nil
}

var _ AuthServiceInterface = (*mockAuthService)(nil)

// mockOfficialService はOfficialServiceInterfaceのモック実装。
type mockOfficialService struct {
	listFn   func(ctx context.Context, filter official.Filter) ([]*model.Official, error)
	getFn    func(ctx context.Context, id string) (*model.Official, error)
	createFn func(ctx context.Context, input official.CreateInput) (*model.Official, error)
	updateFn func(ctx context.Context, id string, input official.UpdateInput) (*model.Official, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockOfficialService) List(ctx context.Context, filter official.Filter) ([]*model.Official, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockOfficialService) Get(ctx context.Context, id string) (*model.Official, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.Official{ID: id}, nil
}

func (m *mockOfficialService) Create(ctx context.Context, input official.CreateInput) (*model.Official, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.Official{}, nil
}

func (m *mockOfficialService) Update(ctx context.Context, id string, input official.UpdateInput) (*model.Official, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, input)
	}
	return &model.Official{ID: id}, nil
}

func (m *mockOfficialService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

var _ OfficialServiceInterface = (*mockOfficialService)(nil)

// mockDocumentService はDocumentServiceInterfaceのモック実装。
type mockDocumentService struct {
	listFn          func(ctx context.Context, filter document.Filter) ([]*model.Document, error)
	listPublishedFn func(ctx context.Context, filter document.Filter) ([]*model.Document, error)
	getFn           func(ctx context.Context, id string) (*model.Document, error)
	createFn        func(ctx context.Context, input document.CreateInput) (*model.Document, error)
	updateFn        func(ctx context.Context, id string, input document.UpdateInput) (*model.Document, error)
	deleteFn        func(ctx context.Context, id string) error
	publishFn       func(ctx context.Context, id string) (*model.Document, error)
	unpublishFn     func(ctx context.Context, id string) (*model.Document, error)
}

func (m *mockDocumentService) List(ctx context.Context, filter document.Filter) ([]*model.Document, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockDocumentService) ListPublished(ctx context.Context, filter document.Filter) ([]*model.Document, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.Document{ID: id}, nil
}

func (m *mockDocumentService) Create(ctx context.Context, input document.CreateInput) (*model.Document, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.Document{}, nil
}

func (m *mockDocumentService) Update(ctx context.Context, id string, input document.UpdateInput) (*model.Document, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, input)
	}
	return &model.Document{ID: id}, nil
}

func (m *mockDocumentService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockDocumentService) Publish(ctx context.Context, id string) (*model.Document, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, id)
	}
	return &model.Document{ID: id, Status: model.DocumentStatusPublished}, nil
}

func (m *mockDocumentService) Unpublish(ctx context.Context, id string) (*model.Document, error) {
	if m.unpublishFn != nil {
		return m.unpublishFn(ctx, id)
	}
	return &model.Document{ID: id, Status: model.DocumentStatusDraft}, nil
}

var (
	_ DocumentServiceInterface = (*mockDocumentService)(nil)
	_ PublicDocumentService    = (*mockDocumentService)(nil)
)

// mockHearingService はHearingServiceInterfaceのモック実装。
type mockHearingService struct {
	listFn   func(ctx context.Context, filter hearing.Filter) ([]*model.Hearing, error)
	getFn    func(ctx context.Context, id string) (*model.Hearing, error)
	createFn func(ctx context.Context, input hearing.CreateInput) (*model.Hearing, error)
	updateFn func(ctx context.Context, id string, input hearing.UpdateInput) (*model.Hearing, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockHearingService) List(ctx context.Context, filter hearing.Filter) ([]*model.Hearing, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockHearingService) Get(ctx context.Context, id string) (*model.Hearing, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.Hearing{ID: id}, nil
}

func (m *mockHearingService) Create(ctx context.Context, input hearing.CreateInput) (*model.Hearing, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.Hearing{}, nil
}

func (m *mockHearingService) Update(ctx context.Context, id string, input hearing.UpdateInput) (*model.Hearing, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, input)
	}
	return &model.Hearing{ID: id}, nil
}

func (m *mockHearingService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

var _ HearingServiceInterface = (*mockHearingService)(nil)

// mockAnnouncementService はAnnouncementServiceInterfaceのモック実装。
type mockAnnouncementService struct {
	listFn          func(ctx context.Context, filter announcement.Filter) ([]*model.Announcement, error)
	listPublishedFn func(ctx context.Context, filter announcement.Filter) ([]*model.Announcement, error)
	getFn           func(ctx context.Context, id string) (*model.Announcement, error)
	createFn        func(ctx context.Context, input announcement.CreateInput) (*model.Announcement, error)
	updateFn        func(ctx context.Context, id string, input announcement.UpdateInput) (*model.Announcement, error)
	deleteFn        func(ctx context.Context, id string) error
	publishFn       func(ctx context.Context, id string) (*model.Announcement, error)
	archiveFn       func(ctx context.Context, id string) (*model.Announcement, error)
	setFeaturedFn   func(ctx context.Context, id string, featured bool) (*model.Announcement, error)
}

func (m *mockAnnouncementService) List(ctx context.Context, filter announcement.Filter) ([]*model.Announcement, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAnnouncementService) ListPublished(ctx context.Context, filter announcement.Filter) ([]*model.Announcement, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAnnouncementService) Get(ctx context.Context, id string) (*model.Announcement, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.Announcement{ID: id}, nil
}

func (m *mockAnnouncementService) Create(ctx context.Context, input announcement.CreateInput) (*model.Announcement, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.Announcement{}, nil
}

func (m *mockAnnouncementService) Update(ctx context.Context, id string, input announcement.UpdateInput) (*model.Announcement, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, input)
	}
	return &model.Announcement{ID: id}, nil
}

func (m *mockAnnouncementService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockAnnouncementService) Publish(ctx context.Context, id string) (*model.Announcement, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, id)
	}
	return &model.Announcement{ID: id, Status: model.AnnouncementStatusPublished}, nil
}

func (m *mockAnnouncementService) Archive(ctx context.Context, id string) (*model.Announcement, error) {
	if m.archiveFn != nil {
		return m.archiveFn(ctx, id)
	}
	return &model.Announcement{ID: id, Status: model.AnnouncementStatusArchived}, nil
}

func (m *mockAnnouncementService) SetFeatured(ctx context.Context, id string, featured bool) (*model.Announcement, error) {
	if m.setFeaturedFn != nil {
		return m.setFeaturedFn(ctx, id, featured)
	}
	return &model.Announcement{ID: id, Featured: featured}, nil
}

var (
	_ AnnouncementServiceInterface = (*mockAnnouncementService)(nil)
	_ PublicAnnouncementService    = (*mockAnnouncementService)(nil)
)

// mockCommitteeService はCommitteeServiceInterfaceのモック実装。
type mockCommitteeService struct {
	listFn   func(ctx context.Context, filter committee.Filter) ([]*model.Committee, error)
	getFn    func(ctx context.Context, id string) (*model.Committee, error)
	createFn func(ctx context.Context, input committee.CreateInput) (*model.Committee, error)
	updateFn func(ctx context.Context, id string, input committee.UpdateInput) (*model.Committee, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockCommitteeService) List(ctx context.Context, filter committee.Filter) ([]*model.Committee, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockCommitteeService) Get(ctx context.Context, id string) (*model.Committee, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.Committee{ID: id}, nil
}

func (m *mockCommitteeService) Create(ctx context.Context, input committee.CreateInput) (*model.Committee, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.Committee{}, nil
}

func (m *mockCommitteeService) Update(ctx context.Context, id string, input committee.UpdateInput) (*model.Committee, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, input)
	}
	return &model.Committee{ID: id}, nil
}

func (m *mockCommitteeService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

var _ CommitteeServiceInterface = (*mockCommitteeService)(nil)
