package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/sanggunian/internal/model"
)

// PostgresSessionRepo はPostgreSQLを使用したセッションリポジトリ。
// FindByIDは絶対期限（expires_at）とアイドル期限（last_seen_at + idleTimeout）の
// 両方を検証し、失効セッションを存在しないものとして扱う。
type PostgresSessionRepo struct {
	db          *sql.DB
	idleTimeout time.Duration
}

// NewPostgresSessionRepo はPostgresSessionRepoを生成する。
// idleTimeoutが0以下の場合はアイドル失効を行わない。
func NewPostgresSessionRepo(db *sql.DB, idleTimeout time.Duration) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db, idleTimeout: idleTimeout}
}

// Create はセッションを作成する。
func (r *PostgresSessionRepo) Create(ctx context.Context, session *model.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, last_seen_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.UserID, session.ExpiresAt, session.LastSeenAt, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("セッションの作成に失敗しました: %w", err)
	}
	return nil
}

// FindByID は指定IDのセッションを取得する。
// 期限切れ・アイドル切れ・未知のIDはいずれもnilを返す（エラーにはならない）。
func (r *PostgresSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	session := &model.Session{}

	query := `SELECT s.id, s.user_id, u.role, s.expires_at, s.last_seen_at, s.created_at
	          FROM sessions s
	          JOIN users u ON u.id = s.user_id
	          WHERE s.id = $1 AND s.expires_at > now()`
	args := []interface{}{id}

	if r.idleTimeout > 0 {
		query += ` AND s.last_seen_at > now() - $2::interval`
		args = append(args, fmt.Sprintf("%d seconds", int(r.idleTimeout.Seconds())))
	}

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&session.ID, &session.UserID, &session.Role,
		&session.ExpiresAt, &session.LastSeenAt, &session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("セッションの取得に失敗しました: %w", err)
	}

	return session, nil
}

// Touch はセッションの最終アクセス日時を更新する。
func (r *PostgresSessionRepo) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET last_seen_at = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("セッションの更新に失敗しました: %w", err)
	}
	return nil
}

// DeleteByID は指定IDのセッションを削除する。存在しない場合もエラーにならない。
func (r *PostgresSessionRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("セッションの削除に失敗しました: %w", err)
	}
	return nil
}

// DeleteByUserID は指定ユーザーの全セッションを削除する。
func (r *PostgresSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("ユーザーセッションの削除に失敗しました: %w", err)
	}
	return nil
}
