package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/sanggunian/internal/announcement"
	"github.com/hitoshi/sanggunian/internal/auth"
	"github.com/hitoshi/sanggunian/internal/committee"
	"github.com/hitoshi/sanggunian/internal/config"
	"github.com/hitoshi/sanggunian/internal/database"
	"github.com/hitoshi/sanggunian/internal/document"
	"github.com/hitoshi/sanggunian/internal/handler"
	"github.com/hitoshi/sanggunian/internal/hearing"
	"github.com/hitoshi/sanggunian/internal/logger"
	"github.com/hitoshi/sanggunian/internal/metrics"
	"github.com/hitoshi/sanggunian/internal/middleware"
	"github.com/hitoshi/sanggunian/internal/official"
	"github.com/hitoshi/sanggunian/internal/repository"
	"github.com/hitoshi/sanggunian/internal/security"
	"github.com/hitoshi/sanggunian/internal/seed"
	"github.com/hitoshi/sanggunian/internal/worker/cleanup"
	"github.com/hitoshi/sanggunian/internal/worker/linkcheck"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, false)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. デバッグログが有効な場合はログレベルを切り替える
	if cfg.LogDebug {
		logger.SetupDefault(w, true)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandWorker:
		return runWorker(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandSeed:
		return runSeed(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db, cfg.SessionIdleTimeout)
	officialRepo := repository.NewPostgresOfficialRepo(db)
	documentRepo := repository.NewPostgresDocumentRepo(db)
	hearingRepo := repository.NewPostgresHearingRepo(db)
	announcementRepo := repository.NewPostgresAnnouncementRepo(db)
	committeeRepo := repository.NewPostgresCommitteeRepo(db)

	// 3. セキュリティサービスの初期化
	sanitizer := security.NewContentSanitizer()

	// 4. ドメインサービスの初期化
	authService := auth.NewService(
		userRepo, sessionRepo,
		auth.ServiceConfig{SessionMaxAge: cfg.SessionMaxAge},
	)
	officialService := official.NewService(officialRepo)
	documentService := document.NewService(documentRepo)
	hearingService := hearing.NewService(hearingRepo)
	announcementService := announcement.NewService(announcementRepo, sanitizer)
	committeeService := committee.NewService(committeeRepo)

	// 5. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	metricsHandler := metrics.SetupMetricsRoute(registry)

	// 6. レートリミッターの構築（configはreq/min単位なのでreq/secに変換する）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimitGeneral > 0 {
		rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
		rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	}
	if cfg.RateLimitLogin > 0 {
		rateLimiterCfg.LoginRate = rate.Limit(float64(cfg.RateLimitLogin) / 60.0)
		rateLimiterCfg.LoginBurst = cfg.RateLimitLogin
	}
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 7. ルーターの構築
	deps := &handler.RouterDeps{
		HealthChecker:     db,
		SessionStore:      sessionRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		CSRFConfig: middleware.CSRFConfig{
			CookieSecure: cfg.CookieSecure,
			CookieDomain: cfg.CookieDomain,
		},
		RateLimiter:    rateLimiter,
		MetricsHandler: metricsHandler,

		LoginRecorder:        collector,
		ContentWriteRecorder: collector,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
		},

		OfficialService:     officialService,
		DocumentService:     documentService,
		HearingService:      hearingService,
		AnnouncementService: announcementService,
		CommitteeService:    committeeService,

		PublicDocumentService:     documentService,
		PublicAnnouncementService: announcementService,

		FeedConfig: handler.FeedConfig{
			SiteName: cfg.SiteName,
			BaseURL:  cfg.BaseURL,
		},
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runWorker はワーカーモードで起動する。
// DB接続を開き、リンクチェッカーとクリーンアップジョブを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとシャットダウンする。
func runWorker(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established (worker)")

	// 2. リポジトリの初期化
	documentRepo := repository.NewPostgresDocumentRepo(db)
	hearingRepo := repository.NewPostgresHearingRepo(db)

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. リンクチェッカーの初期化
	ssrfGuard := security.NewSSRFGuard()
	checker := linkcheck.NewChecker(
		documentRepo, hearingRepo, ssrfGuard,
		slog.Default(), collector,
		linkcheck.Config{
			Timeout:        cfg.LinkCheckTimeout,
			MaxConcurrency: cfg.LinkCheckMaxConcurrent,
		},
	)

	// 5. クリーンアップジョブの初期化
	cleanupJob := cleanup.NewCleanupJob(db, slog.Default(), collector, cfg.SessionIdleTimeout)

	// グレースフルシャットダウンのためのシグナルハンドリング
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker starting",
		slog.Duration("linkcheck_interval", cfg.LinkCheckInterval),
		slog.Duration("cleanup_interval", cfg.CleanupInterval),
		slog.Int("max_concurrent", cfg.LinkCheckMaxConcurrent),
	)

	// クリーンアップジョブをバックグラウンドで起動
	go cleanupJob.Start(ctx, cfg.CleanupInterval)

	// リンクチェッカーをメインgoroutineで実行（ブロッキング）
	checker.Start(ctx, cfg.LinkCheckInterval)

	slog.Info("worker stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runSeed は初期データ投入を実行する。
// 管理者アカウントとサンプルコンテンツを冪等に作成する。
// 管理者のパスワードは環境変数SEED_ADMIN_PASSWORDで必ず指定する。
func runSeed(cfg *config.Config) error {
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@sanggunian.gov"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD is required for seed command")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	seeder := seed.NewSeeder(
		repository.NewPostgresUserRepo(db),
		repository.NewPostgresOfficialRepo(db),
		repository.NewPostgresDocumentRepo(db),
		repository.NewPostgresHearingRepo(db),
		repository.NewPostgresAnnouncementRepo(db),
		repository.NewPostgresCommitteeRepo(db),
		slog.Default(),
	)

	if err := seeder.Run(context.Background(), adminEmail, adminPassword); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	slog.Info("seed completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
