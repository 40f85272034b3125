package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/leviproof/internal/model"
)

// PostgresStoryRepo はPostgreSQLを使用したストーリーリポジトリ。
// ストーリーの書き込みは外部コレクターが行うため、読み取り操作のみを提供する。
type PostgresStoryRepo struct {
	db *sql.DB
}

// NewPostgresStoryRepo はPostgresStoryRepoを生成する。
func NewPostgresStoryRepo(db *sql.DB) *PostgresStoryRepo {
	return &PostgresStoryRepo{db: db}
}

// ListByTargetID は指定ターゲットの全ストーリーをtimestamp降順で取得する。
// summary / full_analysis / media_url は解析待ちの間NULLのことがあるため、
// NULLは空文字列として読み出す。
func (r *PostgresStoryRepo) ListByTargetID(ctx context.Context, targetID string) ([]*model.Story, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, target_id, story_id, timestamp, media_type,
		        media_url, summary, full_analysis, created_at
		 FROM stories
		 WHERE target_id = $1
		 ORDER BY timestamp DESC`,
		targetID,
	)
	if err != nil {
		return nil, fmt.Errorf("ストーリー一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	stories := []*model.Story{}
	for rows.Next() {
		story := &model.Story{}
		var mediaURL, summary, fullAnalysis sql.NullString

		if err := rows.Scan(
			&story.ID, &story.TargetID, &story.StoryID,
			&story.Timestamp, &story.MediaType,
			&mediaURL, &summary, &fullAnalysis, &story.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ストーリーの読み取りに失敗しました: %w", err)
		}

		story.MediaURL = nullStringValue(mediaURL)
		story.Summary = nullStringValue(summary)
		story.FullAnalysis = nullStringValue(fullAnalysis)

		stories = append(stories, story)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ストーリー一覧の走査に失敗しました: %w", err)
	}

	return stories, nil
}

// nullStringValue はsql.NullStringから文字列を取得する。
func nullStringValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// compile-time interface check
var _ StoryRepository = (*PostgresStoryRepo)(nil)
