package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/sanggunian/internal/middleware"
)

// HealthChecker はヘルスチェックでのDB疎通確認に使うインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア・運用依存
	HealthChecker     HealthChecker
	SessionStore      middleware.SessionStore
	CORSAllowedOrigin string
	CSRFConfig        middleware.CSRFConfig
	RateLimiter       *middleware.RateLimiter
	MetricsHandler    http.Handler

	// メトリクス収集
	LoginRecorder        LoginRecorder
	ContentWriteRecorder ContentWriteRecorder

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// コンテンツ
	OfficialService     OfficialServiceInterface
	DocumentService     DocumentServiceInterface
	HearingService      HearingServiceInterface
	AnnouncementService AnnouncementServiceInterface
	CommitteeService    CommitteeServiceInterface

	// 公開サイト向け（サービス実装は管理側と共通）
	PublicDocumentService     PublicDocumentService
	PublicAnnouncementService PublicAnnouncementService

	// RSS
	FeedConfig FeedConfig
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → SecurityHeaders → CORS → CSRF → Recovery → Logging
//
// 認証ルート（/auth/*）と公開ルート（/api/public/*）はセッションミドルウェアの外に配置する。
// 管理ルート（/api/admin/*）は Session → RateLimit(General) を追加で通す。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, deps.LoginRecorder)
	officialHandler := NewOfficialHandler(deps.OfficialService, deps.ContentWriteRecorder)
	documentHandler := NewDocumentHandler(deps.DocumentService, deps.ContentWriteRecorder)
	hearingHandler := NewHearingHandler(deps.HearingService, deps.ContentWriteRecorder)
	announcementHandler := NewAnnouncementHandler(deps.AnnouncementService, deps.ContentWriteRecorder)
	committeeHandler := NewCommitteeHandler(deps.CommitteeService, deps.ContentWriteRecorder)
	publicHandler := NewPublicHandler(
		deps.OfficialService,
		deps.PublicDocumentService,
		deps.HearingService,
		deps.PublicAnnouncementService,
		deps.CommitteeService,
	)
	feedHandler := NewFeedHandler(deps.PublicAnnouncementService, deps.FeedConfig)

	// --- 運用エンドポイント ---

	r.Get("/health", newHealthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- 認証不要のルート ---

	r.Method(http.MethodGet, "/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

	r.Route("/auth", func(r chi.Router) {
		// ログイン試行はIP単位のレート制限を通す
		r.With(deps.RateLimiter.LoginMiddleware()).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// 公開サイト向けルート
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/officials", publicHandler.ListOfficials)
		r.Get("/officials/{id}", publicHandler.GetOfficial)
		r.Get("/documents", publicHandler.ListDocuments)
		r.Get("/documents/{id}", publicHandler.GetDocument)
		r.Get("/hearings", publicHandler.ListHearings)
		r.Get("/hearings/{id}", publicHandler.GetHearing)
		r.Get("/announcements", publicHandler.ListAnnouncements)
		r.Get("/announcements/feed", feedHandler.Feed)
		r.Get("/announcements/{id}", publicHandler.GetAnnouncement)
		r.Get("/committees", publicHandler.ListCommittees)
		r.Get("/committees/{id}", publicHandler.GetCommittee)
	})

	// --- 認証が必要な管理ルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionStore))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/api/admin/officials", func(r chi.Router) {
			r.Get("/", officialHandler.ListOfficials)
			r.Post("/", officialHandler.CreateOfficial)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", officialHandler.GetOfficial)
				r.Patch("/", officialHandler.UpdateOfficial)
				r.With(middleware.RequireAdmin).Delete("/", officialHandler.DeleteOfficial)
			})
		})

		r.Route("/api/admin/documents", func(r chi.Router) {
			r.Get("/", documentHandler.ListDocuments)
			r.Post("/", documentHandler.CreateDocument)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", documentHandler.GetDocument)
				r.Patch("/", documentHandler.UpdateDocument)
				r.With(middleware.RequireAdmin).Delete("/", documentHandler.DeleteDocument)
				r.Post("/publish", documentHandler.PublishDocument)
				r.Post("/unpublish", documentHandler.UnpublishDocument)
			})
		})

		r.Route("/api/admin/hearings", func(r chi.Router) {
			r.Get("/", hearingHandler.ListHearings)
			r.Post("/", hearingHandler.CreateHearing)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", hearingHandler.GetHearing)
				r.Patch("/", hearingHandler.UpdateHearing)
				r.With(middleware.RequireAdmin).Delete("/", hearingHandler.DeleteHearing)
			})
		})

		r.Route("/api/admin/announcements", func(r chi.Router) {
			r.Get("/", announcementHandler.ListAnnouncements)
			r.Post("/", announcementHandler.CreateAnnouncement)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", announcementHandler.GetAnnouncement)
				r.Patch("/", announcementHandler.UpdateAnnouncement)
				r.With(middleware.RequireAdmin).Delete("/", announcementHandler.DeleteAnnouncement)
				r.Post("/publish", announcementHandler.PublishAnnouncement)
				r.Post("/archive", announcementHandler.ArchiveAnnouncement)
				r.Post("/feature", announcementHandler.SetFeatured)
			})
		})

		r.Route("/api/admin/committees", func(r chi.Router) {
			r.Get("/", committeeHandler.ListCommittees)
			r.Post("/", committeeHandler.CreateCommittee)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", committeeHandler.GetCommittee)
				r.Patch("/", committeeHandler.UpdateCommittee)
				r.With(middleware.RequireAdmin).Delete("/", committeeHandler.DeleteCommittee)
			})
		})
	})

	return r
}

// newHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
