// Package dossier はdossier閲覧のドメインロジックを提供する。
package dossier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/leviproof/internal/model"
	"github.com/hitoshi/leviproof/internal/repository"
	"github.com/hitoshi/leviproof/internal/security"
)

// ViewRecorder はdossier閲覧のメトリクス記録インターフェース。
type ViewRecorder interface {
	RecordDossierViewed()
	RecordStoriesServed(count int)
}

// Document はdossier 1件分の応答ドキュメント。
// ターゲットのメタデータと、新しい順に並んだストーリーを含む。
type Document struct {
	Target  *model.Target
	Stories []*model.Story
}

// StoryCount はドキュメントに含まれるストーリー数を返す。
// ストーリーゼロは正常な状態であり、"no stories yet"として表示される。
func (d *Document) StoryCount() int {
	return len(d.Stories)
}

// Service はdossier閲覧のサービス層。
// dossier IDはそれ自体が閲覧権限となるため、認証は行わない。
type Service struct {
	targetRepo repository.TargetRepository
	storyRepo  repository.StoryRepository
	sanitizer  security.AnalysisSanitizerService
	recorder   ViewRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnil許容（テスト用）。
func NewService(
	targetRepo repository.TargetRepository,
	storyRepo repository.StoryRepository,
	sanitizer security.AnalysisSanitizerService,
	recorder ViewRecorder,
) *Service {
	return &Service{
		targetRepo: targetRepo,
		storyRepo:  storyRepo,
		sanitizer:  sanitizer,
		recorder:   recorder,
	}
}

// Fetch はdossier IDからドキュメントを構築する。
//
// dossier IDが未発行の場合はnot_foundエラーを返す。これはストレージ障害
// （systemエラー）とは区別される。ストーリーはtimestamp降順で返され、
// summary / full_analysisは応答前にサニタイズされる。
func (s *Service) Fetch(ctx context.Context, dossierID string) (*Document, error) {
	target, err := s.targetRepo.FindByDossierID(ctx, dossierID)
	if err != nil {
		return nil, fmt.Errorf("dossierの解決に失敗しました: %w", err)
	}
	if target == nil {
		return nil, model.NewDossierNotFoundError()
	}

	stories, err := s.storyRepo.ListByTargetID(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("ストーリーの取得に失敗しました: %w", err)
	}

	for _, story := range stories {
		story.Summary = s.sanitizer.Sanitize(story.Summary)
		story.FullAnalysis = s.sanitizer.Sanitize(story.FullAnalysis)

		// media_typeはスキーマのCHECK制約で守られているが、コレクターは
		// このWeb層の外で書き込むため、閉集合の検証は応答側でも行う。
		// 不正値1件でタイムライン全体を落とさず、imageに寄せて警告する。
		if !story.MediaType.IsValid() {
			slog.Warn("story has invalid media_type, coercing to image",
				slog.String("story_id", story.ID),
				slog.String("media_type", string(story.MediaType)),
			)
			story.MediaType = model.MediaTypeImage
		}
	}

	if s.recorder != nil {
		s.recorder.RecordDossierViewed()
		s.recorder.RecordStoriesServed(len(stories))
	}

	return &Document{
		Target:  target,
		Stories: stories,
	}, nil
}
