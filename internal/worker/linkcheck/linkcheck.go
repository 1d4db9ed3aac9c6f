// Package linkcheck は外部ホストされたファイルへのリンク切れ検査ジョブを提供する。
// 公開済み文書の添付ファイルURLと公聴会の動画URLに対してHEADリクエストを発行し、
// 結果を各レコードに記録する。取得はSSRF対策済みクライアント経由で行う。
package linkcheck

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/security"
)

// DocumentLinkStore はリンクチェック対象の文書を扱うインターフェース。
type DocumentLinkStore interface {
	ListWithFileURL(ctx context.Context) ([]*model.Document, error)
	UpdateLinkCheck(ctx context.Context, id string, ok bool, checkedAt time.Time) error
}

// HearingLinkStore はリンクチェック対象の公聴会を扱うインターフェース。
type HearingLinkStore interface {
	ListWithVideoURL(ctx context.Context) ([]*model.Hearing, error)
	UpdateLinkCheck(ctx context.Context, id string, ok bool, checkedAt time.Time) error
}

// LinkCheckRecorder はリンクチェック結果をメトリクスに記録するインターフェース。
type LinkCheckRecorder interface {
	RecordLinkCheck(ok bool)
	RecordLinkCheckLatency(duration time.Duration)
}

// Config はCheckerの動作設定。
type Config struct {
	Timeout        time.Duration
	MaxConcurrency int
}

// Checker は文書・公聴会のリンク切れを検査するジョブ。
type Checker struct {
	documents      DocumentLinkStore
	hearings       HearingLinkStore
	guard          security.SSRFGuardService
	client         *http.Client
	logger         *slog.Logger
	metrics        LinkCheckRecorder
	maxConcurrency int
	nowFn          func() time.Time
}

// NewChecker はCheckerの新しいインスタンスを生成する。
// MaxConcurrencyが0以下の場合はデフォルト値5を使用する。
func NewChecker(
	documents DocumentLinkStore,
	hearings HearingLinkStore,
	guard security.SSRFGuardService,
	logger *slog.Logger,
	metrics LinkCheckRecorder,
	config Config,
) *Checker {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 5
	}
	return &Checker{
		documents:      documents,
		hearings:       hearings,
		guard:          guard,
		client:         guard.NewSafeClient(config.Timeout),
		logger:         logger,
		metrics:        metrics,
		maxConcurrency: config.MaxConcurrency,
		nowFn:          time.Now,
	}
}

// target はリンクチェックの1検査対象。
type target struct {
	entity string
	id     string
	url    string
	update func(ctx context.Context, id string, ok bool, checkedAt time.Time) error
}

// RunOnce は全対象のリンクチェックを1回実行する。
// semaphoreパターンで最大並列数を制御する。
func (c *Checker) RunOnce(ctx context.Context) error {
	start := time.Now()

	targets, err := c.collectTargets(ctx)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		c.logger.Info("リンクチェック対象はありません")
		return nil
	}

	c.logger.Info("リンクチェックサイクルを開始します",
		slog.Int("target_count", len(targets)),
	)

	sem := make(chan struct{}, c.maxConcurrency)
	var wg sync.WaitGroup

	for _, tgt := range targets {
		wg.Add(1)
		sem <- struct{}{}

		go func(tgt target) {
			defer wg.Done()
			defer func() { <-sem }()

			ok := c.checkURL(ctx, tgt.url)
			c.metrics.RecordLinkCheck(ok)

			if err := tgt.update(ctx, tgt.id, ok, c.nowFn()); err != nil {
				c.logger.Error("リンクチェック結果の記録に失敗しました",
					slog.String("entity", tgt.entity),
					slog.String("id", tgt.id),
					slog.String("error", err.Error()),
				)
				return
			}

			if !ok {
				c.logger.Warn("リンク切れを検出しました",
					slog.String("entity", tgt.entity),
					slog.String("id", tgt.id),
					slog.String("url", tgt.url),
				)
			}
		}(tgt)
	}

	wg.Wait()

	c.logger.Info("リンクチェックサイクルが完了しました",
		slog.Int("target_count", len(targets)),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return nil
}

// collectTargets は検査対象のURLを文書と公聴会から集める。
func (c *Checker) collectTargets(ctx context.Context) ([]target, error) {
	var targets []target

	docs, err := c.documents.ListWithFileURL(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		targets = append(targets, target{
			entity: "document",
			id:     d.ID,
			url:    d.FileURL,
			update: c.documents.UpdateLinkCheck,
		})
	}

	hearings, err := c.hearings.ListWithVideoURL(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range hearings {
		targets = append(targets, target{
			entity: "hearing",
			id:     h.ID,
			url:    h.VideoURL,
			update: c.hearings.UpdateLinkCheck,
		})
	}

	return targets, nil
}

// checkURL は単一URLの生存確認を行う。
// SSRFガードで拒否されたURLは検査せずリンク切れ扱いにする。
// HEADを受け付けないサーバー（405/501）にはGETで再試行する。
func (c *Checker) checkURL(ctx context.Context, rawURL string) bool {
	if err := c.guard.ValidateURL(rawURL); err != nil {
		return false
	}

	start := time.Now()
	ok, status := c.request(ctx, http.MethodHead, rawURL)
	if !ok && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		ok, _ = c.request(ctx, http.MethodGet, rawURL)
	}
	c.metrics.RecordLinkCheckLatency(time.Since(start))
	return ok
}

func (c *Checker) request(ctx context.Context, method, rawURL string) (bool, int) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return false, 0
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, 0
	}
	defer resp.Body.Close()

	return resp.StatusCode < 400, resp.StatusCode
}

// Start は指定間隔のティッカーでリンクチェックジョブを起動する。
// 起動直後に1回実行し、以降はコンテキストがキャンセルされるまで繰り返す。
func (c *Checker) Start(ctx context.Context, interval time.Duration) {
	c.logger.Info("リンクチェックジョブを開始しました",
		slog.Duration("interval", interval),
		slog.Int("max_concurrency", c.maxConcurrency),
	)

	if err := c.RunOnce(ctx); err != nil {
		c.logger.Error("リンクチェックサイクルの実行に失敗しました",
			slog.String("error", err.Error()),
		)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("リンクチェックジョブを停止しました")
			return
		case <-ticker.C:
			if err := c.RunOnce(ctx); err != nil {
				c.logger.Error("リンクチェックサイクルの実行に失敗しました",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
