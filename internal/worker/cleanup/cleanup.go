// Package cleanup は期限切れデータの自動整理ジョブを提供する。
// 失効したセッションの削除と、有効期限を過ぎた公開中お知らせの
// 自動アーカイブを定期バッチで実行する。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Executor はSQLのExecContextを抽象化するインターフェース。
// *sql.DB や *sql.Tx を受け付けることができる。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// CleanupRecorder はクリーンアップ結果をメトリクスに記録するインターフェース。
type CleanupRecorder interface {
	RecordSessionsCleaned(count int)
	RecordAnnouncementsArchived(count int)
}

// CleanupJob は期限切れセッションの削除とお知らせの自動アーカイブを行うジョブ。
// 定期実行のバッチジョブとして設計されており、冪等な処理を保証する。
type CleanupJob struct {
	db          Executor
	logger      *slog.Logger
	metrics     CleanupRecorder
	idleTimeout time.Duration
}

// NewCleanupJob は新しいCleanupJobを生成する。
// idleTimeoutはセッションのアイドル失効時間。0以下の場合はアイドル失効を判定しない。
func NewCleanupJob(db Executor, logger *slog.Logger, metrics CleanupRecorder, idleTimeout time.Duration) *CleanupJob {
	return &CleanupJob{
		db:          db,
		logger:      logger,
		metrics:     metrics,
		idleTimeout: idleTimeout,
	}
}

// Run は期限切れセッションの削除とお知らせの自動アーカイブを1回実行する。
// 冪等: 対象がない場合でもエラーにならない。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	deleted, err := j.cleanSessions(ctx)
	if err != nil {
		return err
	}

	archived, err := j.archiveAnnouncements(ctx)
	if err != nil {
		return err
	}

	j.logger.Info("クリーンアップジョブが完了しました",
		slog.Int64("sessions_deleted", deleted),
		slog.Int64("announcements_archived", archived),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return nil
}

// cleanSessions は絶対期限またはアイドル期限を過ぎたセッションを削除する。
func (j *CleanupJob) cleanSessions(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < now()`
	args := []interface{}{}
	if j.idleTimeout > 0 {
		query = `DELETE FROM sessions WHERE expires_at < now() OR last_seen_at < now() - $1::interval`
		args = append(args, fmt.Sprintf("%d seconds", int(j.idleTimeout.Seconds())))
	}

	result, err := j.db.ExecContext(ctx, query, args...)
	if err != nil {
		j.logger.Error("セッションクリーンアップの実行に失敗しました",
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("セッションクリーンアップの実行に失敗: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	if deleted > 0 {
		j.metrics.RecordSessionsCleaned(int(deleted))
	}
	return deleted, nil
}

// archiveAnnouncements は有効期限を過ぎた公開中のお知らせをアーカイブ状態に移す。
func (j *CleanupJob) archiveAnnouncements(ctx context.Context) (int64, error) {
	query := `UPDATE announcements
	          SET status = 'archived', updated_at = now()
	          WHERE status = 'published' AND expiry_date IS NOT NULL AND expiry_date < now()`

	result, err := j.db.ExecContext(ctx, query)
	if err != nil {
		j.logger.Error("お知らせの自動アーカイブに失敗しました",
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("お知らせの自動アーカイブに失敗: %w", err)
	}

	archived, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("更新件数の取得に失敗: %w", err)
	}

	if archived > 0 {
		j.metrics.RecordAnnouncementsArchived(int(archived))
	}
	return archived, nil
}

// Start は指定間隔のティッカーでクリーンアップジョブを起動する。
// 起動直後に1回実行し、以降はコンテキストがキャンセルされるまで繰り返す。
func (j *CleanupJob) Start(ctx context.Context, interval time.Duration) {
	j.logger.Info("クリーンアップジョブを開始しました",
		slog.Duration("interval", interval),
	)

	if err := j.Run(ctx); err != nil {
		j.logger.Error("クリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
		)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("クリーンアップジョブを停止しました")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("クリーンアップジョブの実行に失敗しました",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
