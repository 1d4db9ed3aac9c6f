package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/sanggunian/internal/model"
)

// PostgresOfficialRepo はPostgreSQLを使用した議員リポジトリ。
type PostgresOfficialRepo struct {
	db *sql.DB
}

// NewPostgresOfficialRepo はPostgresOfficialRepoを生成する。
func NewPostgresOfficialRepo(db *sql.DB) *PostgresOfficialRepo {
	return &PostgresOfficialRepo{db: db}
}

const officialColumns = `id, name, position, committee, email, phone, bio, image_url, status, created_at, updated_at`

// List は全議員を登録順（created_at, id）で返す。
func (r *PostgresOfficialRepo) List(ctx context.Context) ([]*model.Official, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+officialColumns+` FROM officials ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("議員一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var officials []*model.Official
	for rows.Next() {
		o, err := scanOfficial(rows)
		if err != nil {
			return nil, err
		}
		officials = append(officials, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("議員一覧の読み取りに失敗しました: %w", err)
	}

	return officials, nil
}

// FindByID は指定IDの議員を取得する。見つからない場合はnilを返す。
func (r *PostgresOfficialRepo) FindByID(ctx context.Context, id string) (*model.Official, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+officialColumns+` FROM officials WHERE id = $1`, id)

	o, err := scanOfficial(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create は議員を作成する。
func (r *PostgresOfficialRepo) Create(ctx context.Context, official *model.Official) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO officials (id, name, position, committee, email, phone, bio, image_url, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		official.ID, official.Name, official.Position, official.Committee,
		official.Email, official.Phone, official.Bio, official.ImageURL,
		official.Status, official.CreatedAt, official.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("議員の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は議員の全フィールドを更新する。
func (r *PostgresOfficialRepo) Update(ctx context.Context, official *model.Official) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE officials SET
		    name = $2, position = $3, committee = $4, email = $5,
		    phone = $6, bio = $7, image_url = $8, status = $9, updated_at = $10
		 WHERE id = $1`,
		official.ID, official.Name, official.Position, official.Committee,
		official.Email, official.Phone, official.Bio, official.ImageURL,
		official.Status, official.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("議員の更新に失敗しました: %w", err)
	}
	return nil
}

// Delete は指定IDの議員を削除する。存在しない場合もエラーにならない。
func (r *PostgresOfficialRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM officials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("議員の削除に失敗しました: %w", err)
	}
	return nil
}

// rowScanner は*sql.Rowと*sql.Rowsの両方を受け付けるスキャン用インターフェース。
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOfficial(row rowScanner) (*model.Official, error) {
	o := &model.Official{}
	err := row.Scan(
		&o.ID, &o.Name, &o.Position, &o.Committee, &o.Email,
		&o.Phone, &o.Bio, &o.ImageURL, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("議員レコードの読み取りに失敗しました: %w", err)
	}
	return o, nil
}
