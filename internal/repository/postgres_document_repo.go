package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/hitoshi/sanggunian/internal/model"
)

// PostgresDocumentRepo はPostgreSQLを使用した文書リポジトリ。
type PostgresDocumentRepo struct {
	db *sql.DB
}

// NewPostgresDocumentRepo はPostgresDocumentRepoを生成する。
func NewPostgresDocumentRepo(db *sql.DB) *PostgresDocumentRepo {
	return &PostgresDocumentRepo{db: db}
}

const documentColumns = `id, title, reference_number, type, author, status,
	date_created, date_published, description, file_url, tags,
	link_ok, link_checked_at, created_at, updated_at`

// List は全文書を登録順（created_at, id）で返す。
func (r *PostgresDocumentRepo) List(ctx context.Context) ([]*model.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("文書一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// FindByID は指定IDの文書を取得する。見つからない場合はnilを返す。
func (r *PostgresDocumentRepo) FindByID(ctx context.Context, id string) (*model.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Create は文書を作成する。
func (r *PostgresDocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, reference_number, type, author, status,
		                        date_created, date_published, description, file_url, tags,
		                        link_ok, link_checked_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		doc.ID, doc.Title, doc.ReferenceNumber, doc.Type, doc.Author, doc.Status,
		doc.DateCreated, doc.DatePublished, doc.Description, doc.FileURL, pq.Array(doc.Tags),
		doc.LinkOK, doc.LinkCheckedAt, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("文書の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は文書の全フィールドを更新する。
func (r *PostgresDocumentRepo) Update(ctx context.Context, doc *model.Document) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
		    title = $2, reference_number = $3, type = $4, author = $5, status = $6,
		    date_created = $7, date_published = $8, description = $9, file_url = $10,
		    tags = $11, updated_at = $12
		 WHERE id = $1`,
		doc.ID, doc.Title, doc.ReferenceNumber, doc.Type, doc.Author, doc.Status,
		doc.DateCreated, doc.DatePublished, doc.Description, doc.FileURL,
		pq.Array(doc.Tags), doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("文書の更新に失敗しました: %w", err)
	}
	return nil
}

// Delete は指定IDの文書を削除する。存在しない場合もエラーにならない。
func (r *PostgresDocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("文書の削除に失敗しました: %w", err)
	}
	return nil
}

// ListWithFileURL はfile_urlが設定された公開済み文書を返す。リンクチェック対象。
func (r *PostgresDocumentRepo) ListWithFileURL(ctx context.Context) ([]*model.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE status = 'published' AND file_url <> ''
		 ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("リンクチェック対象文書の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// UpdateLinkCheck はリンクチェック結果を記録する。
func (r *PostgresDocumentRepo) UpdateLinkCheck(ctx context.Context, id string, ok bool, checkedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE documents SET link_ok = $2, link_checked_at = $3 WHERE id = $1`,
		id, ok, checkedAt,
	)
	if err != nil {
		return fmt.Errorf("文書のリンクチェック結果の記録に失敗しました: %w", err)
	}
	return nil
}

func collectDocuments(rows *sql.Rows) ([]*model.Document, error) {
	var docs []*model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("文書一覧の読み取りに失敗しました: %w", err)
	}
	return docs, nil
}

func scanDocument(row rowScanner) (*model.Document, error) {
	doc := &model.Document{}
	var datePublished, linkCheckedAt sql.NullTime
	var linkOK sql.NullBool
	var tags pq.StringArray

	err := row.Scan(
		&doc.ID, &doc.Title, &doc.ReferenceNumber, &doc.Type, &doc.Author, &doc.Status,
		&doc.DateCreated, &datePublished, &doc.Description, &doc.FileURL, &tags,
		&linkOK, &linkCheckedAt, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("文書レコードの読み取りに失敗しました: %w", err)
	}

	doc.Tags = tags
	if datePublished.Valid {
		t := datePublished.Time
		doc.DatePublished = &t
	}
	if linkOK.Valid {
		b := linkOK.Bool
		doc.LinkOK = &b
	}
	if linkCheckedAt.Valid {
		t := linkCheckedAt.Time
		doc.LinkCheckedAt = &t
	}

	return doc, nil
}
