package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/leviproof/internal/model"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEコード。
const pgUniqueViolation = "23505"

// PostgresTargetRepo はPostgreSQLを使用したターゲットリポジトリ。
type PostgresTargetRepo struct {
	db *sql.DB
}

// NewPostgresTargetRepo はPostgresTargetRepoを生成する。
func NewPostgresTargetRepo(db *sql.DB) *PostgresTargetRepo {
	return &PostgresTargetRepo{db: db}
}

// FindByUsername は正規化済みユーザー名でターゲットを検索する。見つからない場合はnilを返す。
func (r *PostgresTargetRepo) FindByUsername(ctx context.Context, username string) (*model.Target, error) {
	target := &model.Target{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, dossier_id, created_at, last_updated_at
		 FROM targets WHERE username = $1`,
		username,
	).Scan(
		&target.ID, &target.Username, &target.DossierID,
		&target.CreatedAt, &target.LastUpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザー名によるターゲットの検索に失敗しました: %w", err)
	}

	return target, nil
}

// FindByDossierID はdossier IDでターゲットを検索する。見つからない場合はnilを返す。
// 照合はテキスト列の完全一致で行われ、大文字小文字は区別される。
func (r *PostgresTargetRepo) FindByDossierID(ctx context.Context, dossierID string) (*model.Target, error) {
	target := &model.Target{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, dossier_id, created_at, last_updated_at
		 FROM targets WHERE dossier_id = $1`,
		dossierID,
	).Scan(
		&target.ID, &target.Username, &target.DossierID,
		&target.CreatedAt, &target.LastUpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dossier IDによるターゲットの検索に失敗しました: %w", err)
	}

	return target, nil
}

// Create はターゲットを作成する。
// usernameの一意制約に違反した場合はErrDuplicateUsernameを返す。
func (r *PostgresTargetRepo) Create(ctx context.Context, target *model.Target) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO targets (id, username, dossier_id, created_at, last_updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		target.ID, target.Username, target.DossierID,
		target.CreatedAt, target.LastUpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("ターゲットの作成に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ TargetRepository = (*PostgresTargetRepo)(nil)
