// Package target はターゲット登録のドメインロジックを提供する。
package target

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/leviproof/internal/identifier"
	"github.com/hitoshi/leviproof/internal/model"
	"github.com/hitoshi/leviproof/internal/repository"
)

// RegistrationRecorder はターゲット登録のメトリクス記録インターフェース。
type RegistrationRecorder interface {
	RecordTargetRegistered()
}

// Service はターゲット登録のサービス層。
// 登録は冪等であり、同一ユーザー名の再登録は既存のdossier IDをそのまま返す。
type Service struct {
	targetRepo repository.TargetRepository
	recorder   RegistrationRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnil許容（テスト用）。
func NewService(targetRepo repository.TargetRepository, recorder RegistrationRecorder) *Service {
	return &Service{
		targetRepo: targetRepo,
		recorder:   recorder,
	}
}

// Register は生のユーザー名からターゲットを登録し、対応するターゲットを返す。
//
// 処理の流れ:
//  1. ユーザー名を正規化する。無効ならvalidationエラー。
//  2. 既存ターゲットを検索し、存在すればそのまま返す（dossier IDは回転しない）。
//  3. 存在しなければ新しいdossier IDを生成して挿入する。
//
// 同一の新規ユーザー名が同時に登録された場合、敗者側の挿入は
// usernameの一意制約違反となる。これはエラーではなくレースの決着であり、
// 勝者の行を再検索して返すことで両者が同一のdossier IDを受け取る。
func (s *Service) Register(ctx context.Context, rawUsername string) (*model.Target, error) {
	username, ok := identifier.NormalizeUsername(rawUsername)
	if !ok {
		return nil, model.NewInvalidUsernameError()
	}

	existing, err := s.targetRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("登録前のターゲット検索に失敗しました: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	dossierID, err := identifier.NewDossierID()
	if err != nil {
		return nil, fmt.Errorf("dossier IDの生成に失敗しました: %w", err)
	}

	now := time.Now().UTC()
	newTarget := &model.Target{
		ID:            uuid.NewString(),
		Username:      username,
		DossierID:     dossierID,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.targetRepo.Create(ctx, newTarget); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			// 同時登録レースに敗れた場合は勝者の行にフォールバックする
			winner, findErr := s.targetRepo.FindByUsername(ctx, username)
			if findErr != nil {
				return nil, fmt.Errorf("レース解決時のターゲット再検索に失敗しました: %w", findErr)
			}
			if winner == nil {
				return nil, fmt.Errorf("一意制約違反後にターゲットが見つかりません: username=%s", username)
			}
			slog.Info("registration race resolved to existing target",
				slog.String("username", username),
			)
			return winner, nil
		}
		return nil, fmt.Errorf("ターゲットの登録に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordTargetRegistered()
	}

	slog.Info("target registered",
		slog.String("username", username),
		slog.String("target_id", newTarget.ID),
	)

	return newTarget, nil
}
