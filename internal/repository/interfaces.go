// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/leviproof/internal/model"
)

// ErrDuplicateUsername はusernameの一意制約違反を表す。
// 同一ユーザー名の同時登録レースで敗者側が受け取り、
// 再検索によって勝者の行へフォールバックするために使用する。
var ErrDuplicateUsername = errors.New("username already exists")

// TargetRepository はターゲットデータの永続化インターフェース。
type TargetRepository interface {
	// FindByUsername は正規化済みユーザー名でターゲットを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.Target, error)

	// FindByDossierID はdossier IDの完全一致（大文字小文字を区別）でターゲットを検索する。
	// 見つからない場合はnilを返す。
	FindByDossierID(ctx context.Context, dossierID string) (*model.Target, error)

	// Create はターゲットを作成する。
	// usernameの一意制約に違反した場合はErrDuplicateUsernameを返す。
	Create(ctx context.Context, target *model.Target) error
}

// StoryRepository はストーリーデータの永続化インターフェース。
// ストーリーの書き込みは外部コレクターのみが行うため、このWeb層は読み取り専用。
type StoryRepository interface {
	// ListByTargetID は指定ターゲットの全ストーリーをtimestamp降順（新しい順）で取得する。
	// ストーリーが存在しない場合は空スライスを返す。
	ListByTargetID(ctx context.Context, targetID string) ([]*model.Story, error)
}
