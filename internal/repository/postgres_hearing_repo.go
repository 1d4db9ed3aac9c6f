package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/hitoshi/sanggunian/internal/model"
)

// PostgresHearingRepo はPostgreSQLを使用した公聴会リポジトリ。
type PostgresHearingRepo struct {
	db *sql.DB
}

// NewPostgresHearingRepo はPostgresHearingRepoを生成する。
func NewPostgresHearingRepo(db *sql.DB) *PostgresHearingRepo {
	return &PostgresHearingRepo{db: db}
}

const hearingColumns = `id, title, description, date, start_time, venue, status,
	participants, agenda, chairperson, video_url,
	link_ok, link_checked_at, created_at, updated_at`

// List は全公聴会を登録順（created_at, id）で返す。
func (r *PostgresHearingRepo) List(ctx context.Context) ([]*model.Hearing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+hearingColumns+` FROM hearings ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("公聴会一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return collectHearings(rows)
}

// FindByID は指定IDの公聴会を取得する。見つからない場合はnilを返す。
func (r *PostgresHearingRepo) FindByID(ctx context.Context, id string) (*model.Hearing, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+hearingColumns+` FROM hearings WHERE id = $1`, id)

	hearing, err := scanHearing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return hearing, nil
}

// Create は公聴会を作成する。
func (r *PostgresHearingRepo) Create(ctx context.Context, hearing *model.Hearing) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hearings (id, title, description, date, start_time, venue, status,
		                       participants, agenda, chairperson, video_url,
		                       link_ok, link_checked_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		hearing.ID, hearing.Title, hearing.Description, hearing.Date, hearing.StartTime,
		hearing.Venue, hearing.Status, pq.Array(hearing.Participants), pq.Array(hearing.Agenda),
		hearing.Chairperson, hearing.VideoURL,
		hearing.LinkOK, hearing.LinkCheckedAt, hearing.CreatedAt, hearing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("公聴会の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は公聴会の全フィールドを更新する。
func (r *PostgresHearingRepo) Update(ctx context.Context, hearing *model.Hearing) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE hearings SET
		    title = $2, description = $3, date = $4, start_time = $5, venue = $6,
		    status = $7, participants = $8, agenda = $9, chairperson = $10,
		    video_url = $11, updated_at = $12
		 WHERE id = $1`,
		hearing.ID, hearing.Title, hearing.Description, hearing.Date, hearing.StartTime,
		hearing.Venue, hearing.Status, pq.Array(hearing.Participants), pq.Array(hearing.Agenda),
		hearing.Chairperson, hearing.VideoURL, hearing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("公聴会の更新に失敗しました: %w", err)
	}
	return nil
}

// Delete は指定IDの公聴会を削除する。存在しない場合もエラーにならない。
func (r *PostgresHearingRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM hearings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("公聴会の削除に失敗しました: %w", err)
	}
	return nil
}

// ListWithVideoURL はvideo_urlが設定された公聴会を返す。リンクチェック対象。
func (r *PostgresHearingRepo) ListWithVideoURL(ctx context.Context) ([]*model.Hearing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+hearingColumns+` FROM hearings
		 WHERE video_url <> ''
		 ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("リンクチェック対象公聴会の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return collectHearings(rows)
}

// UpdateLinkCheck はリンクチェック結果を記録する。
func (r *PostgresHearingRepo) UpdateLinkCheck(ctx context.Context, id string, ok bool, checkedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE hearings SET link_ok = $2, link_checked_at = $3 WHERE id = $1`,
		id, ok, checkedAt,
	)
	if err != nil {
		return fmt.Errorf("公聴会のリンクチェック結果の記録に失敗しました: %w", err)
	}
	return nil
}

func collectHearings(rows *sql.Rows) ([]*model.Hearing, error) {
	var hearings []*model.Hearing
	for rows.Next() {
		hearing, err := scanHearing(rows)
		if err != nil {
			return nil, err
		}
		hearings = append(hearings, hearing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("公聴会一覧の読み取りに失敗しました: %w", err)
	}
	return hearings, nil
}

func scanHearing(row rowScanner) (*model.Hearing, error) {
	hearing := &model.Hearing{}
	var linkCheckedAt sql.NullTime
	var linkOK sql.NullBool
	var participants, agenda pq.StringArray

	err := row.Scan(
		&hearing.ID, &hearing.Title, &hearing.Description, &hearing.Date, &hearing.StartTime,
		&hearing.Venue, &hearing.Status, &participants, &agenda,
		&hearing.Chairperson, &hearing.VideoURL,
		&linkOK, &linkCheckedAt, &hearing.CreatedAt, &hearing.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("公聴会レコードの読み取りに失敗しました: %w", err)
	}

	hearing.Participants = participants
	hearing.Agenda = agenda
	if linkOK.Valid {
		b := linkOK.Bool
		hearing.LinkOK = &b
	}
	if linkCheckedAt.Valid {
		t := linkCheckedAt.Time
		hearing.LinkCheckedAt = &t
	}

	return hearing, nil
}
