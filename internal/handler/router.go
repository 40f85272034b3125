package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/leviproof/internal/middleware"
)

// HealthChecker はヘルスチェックで使用するDB疎通確認のインターフェース。
// *sql.DBが実装する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	CORSAllowedOrigin string
	Logger            *slog.Logger
	Metrics           middleware.RequestRecorder

	// ドメインサービス
	TargetService  TargetServiceInterface
	DossierService DossierServiceInterface

	// 埋め込みページ（intake / dossier view）。nilの場合はページを提供しない。
	Pages http.Handler
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// すべてのルートは認証なしで公開される。dossier IDそのものが
// 閲覧権限のため、セッションやレート制限のミドルウェアは存在しない。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	r.Use(middleware.NewMetricsMiddleware(deps.Metrics))

	targetHandler := NewTargetHandler(deps.TargetService)
	dossierHandler := NewDossierHandler(deps.DossierService)

	// API
	r.Post("/targets", targetHandler.RegisterTarget)
	r.Get("/dossier/{dossierId}", dossierHandler.GetDossier)

	// ヘルスチェック
	r.Get("/health", NewHealthHandler(deps.HealthChecker))

	// ページ（intake / dossier view）
	if deps.Pages != nil {
		r.Handle("/", deps.Pages)
		r.Handle("/d/{dossierId}", deps.Pages)
		r.Handle("/static/*", deps.Pages)
	}

	return r
}

// NewHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
// DBに到達できない場合は503を返す。
func NewHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			w.WriteHeader(http.StatusOK)
			return
		}

		if err := checker.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
