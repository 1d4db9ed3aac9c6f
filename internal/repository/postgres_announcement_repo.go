package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/sanggunian/internal/model"
)

// PostgresAnnouncementRepo はPostgreSQLを使用したお知らせリポジトリ。
type PostgresAnnouncementRepo struct {
	db *sql.DB
}

// NewPostgresAnnouncementRepo はPostgresAnnouncementRepoを生成する。
func NewPostgresAnnouncementRepo(db *sql.DB) *PostgresAnnouncementRepo {
	return &PostgresAnnouncementRepo{db: db}
}

const announcementColumns = `id, title, content, category, priority, status,
	publish_date, expiry_date, author, featured, tags, created_at, updated_at`

// List は全お知らせを登録順（created_at, id）で返す。
func (r *PostgresAnnouncementRepo) List(ctx context.Context) ([]*model.Announcement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("お知らせ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var announcements []*model.Announcement
	for rows.Next() {
		announcement, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("お知らせ一覧の読み取りに失敗しました: %w", err)
	}

	return announcements, nil
}

// FindByID は指定IDのお知らせを取得する。見つからない場合はnilを返す。
func (r *PostgresAnnouncementRepo) FindByID(ctx context.Context, id string) (*model.Announcement, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id)

	announcement, err := scanAnnouncement(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return announcement, nil
}

// Create はお知らせを作成する。
func (r *PostgresAnnouncementRepo) Create(ctx context.Context, announcement *model.Announcement) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO announcements (id, title, content, category, priority, status,
		                            publish_date, expiry_date, author, featured, tags,
		                            created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		announcement.ID, announcement.Title, announcement.Content,
		announcement.Category, announcement.Priority, announcement.Status,
		announcement.PublishDate, announcement.ExpiryDate, announcement.Author,
		announcement.Featured, pq.Array(announcement.Tags),
		announcement.CreatedAt, announcement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("お知らせの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はお知らせの全フィールドを更新する。
func (r *PostgresAnnouncementRepo) Update(ctx context.Context, announcement *model.Announcement) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE announcements SET
		    title = $2, content = $3, category = $4, priority = $5, status = $6,
		    publish_date = $7, expiry_date = $8, author = $9, featured = $10,
		    tags = $11, updated_at = $12
		 WHERE id = $1`,
		announcement.ID, announcement.Title, announcement.Content,
		announcement.Category, announcement.Priority, announcement.Status,
		announcement.PublishDate, announcement.ExpiryDate, announcement.Author,
		announcement.Featured, pq.Array(announcement.Tags), announcement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("お知らせの更新に失敗しました: %w", err)
	}
	return nil
}

// Delete は指定IDのお知らせを削除する。存在しない場合もエラーにならない。
func (r *PostgresAnnouncementRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("お知らせの削除に失敗しました: %w", err)
	}
	return nil
}

func scanAnnouncement(row rowScanner) (*model.Announcement, error) {
	announcement := &model.Announcement{}
	var expiryDate sql.NullTime
	var tags pq.StringArray

	err := row.Scan(
		&announcement.ID, &announcement.Title, &announcement.Content,
		&announcement.Category, &announcement.Priority, &announcement.Status,
		&announcement.PublishDate, &expiryDate, &announcement.Author,
		&announcement.Featured, &tags, &announcement.CreatedAt, &announcement.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("お知らせレコードの読み取りに失敗しました: %w", err)
	}

	announcement.Tags = tags
	if expiryDate.Valid {
		t := expiryDate.Time
		announcement.ExpiryDate = &t
	}

	return announcement, nil
}
