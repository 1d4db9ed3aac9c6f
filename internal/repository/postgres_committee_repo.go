package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/sanggunian/internal/model"
)

// PostgresCommitteeRepo はPostgreSQLを使用した委員会リポジトリ。
type PostgresCommitteeRepo struct {
	db *sql.DB
}

// NewPostgresCommitteeRepo はPostgresCommitteeRepoを生成する。
func NewPostgresCommitteeRepo(db *sql.DB) *PostgresCommitteeRepo {
	return &PostgresCommitteeRepo{db: db}
}

const committeeColumns = `id, name, description, chairman, members, meeting_schedule, status, created_at, updated_at`

// List は全委員会を登録順（created_at, id）で返す。
func (r *PostgresCommitteeRepo) List(ctx context.Context) ([]*model.Committee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+committeeColumns+` FROM committees ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("委員会一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var committees []*model.Committee
	for rows.Next() {
		committee, err := scanCommittee(rows)
		if err != nil {
			return nil, err
		}
		committees = append(committees, committee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("委員会一覧の読み取りに失敗しました: %w", err)
	}

	return committees, nil
}

// FindByID は指定IDの委員会を取得する。見つからない場合はnilを返す。
func (r *PostgresCommitteeRepo) FindByID(ctx context.Context, id string) (*model.Committee, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+committeeColumns+` FROM committees WHERE id = $1`, id)

	committee, err := scanCommittee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return committee, nil
}

// Create は委員会を作成する。
func (r *PostgresCommitteeRepo) Create(ctx context.Context, committee *model.Committee) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO committees (id, name, description, chairman, members, meeting_schedule, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		committee.ID, committee.Name, committee.Description, committee.Chairman,
		pq.Array(committee.Members), committee.MeetingSchedule, committee.Status,
		committee.CreatedAt, committee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("委員会の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は委員会の全フィールドを更新する。
func (r *PostgresCommitteeRepo) Update(ctx context.Context, committee *model.Committee) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE committees SET
		    name = $2, description = $3, chairman = $4, members = $5,
		    meeting_schedule = $6, status = $7, updated_at = $8
		 WHERE id = $1`,
		committee.ID, committee.Name, committee.Description, committee.Chairman,
		pq.Array(committee.Members), committee.MeetingSchedule, committee.Status,
		committee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("委員会の更新に失敗しました: %w", err)
	}
	return nil
}

// Delete は指定IDの委員会を削除する。存在しない場合もエラーにならない。
func (r *PostgresCommitteeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM committees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("委員会の削除に失敗しました: %w", err)
	}
	return nil
}

func scanCommittee(row rowScanner) (*model.Committee, error) {
	committee := &model.Committee{}
	var members pq.StringArray

	err := row.Scan(
		&committee.ID, &committee.Name, &committee.Description, &committee.Chairman,
		&members, &committee.MeetingSchedule, &committee.Status,
		&committee.CreatedAt, &committee.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("委員会レコードの読み取りに失敗しました: %w", err)
	}

	committee.Members = members
	return committee, nil
}
