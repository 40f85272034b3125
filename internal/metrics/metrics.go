// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアとサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordTargetRegistered()
	RecordDossierViewed()
	RecordStoriesServed(count int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus        *prometheus.CounterVec
	requestLatency    prometheus.Histogram
	targetsRegistered prometheus.Counter
	dossierViews      prometheus.Counter
	storiesServed     prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leviproof_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leviproof_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		targetsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leviproof_targets_registered_total",
			Help: "新規登録されたターゲットの合計数",
		}),
		dossierViews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leviproof_dossier_views_total",
			Help: "dossier閲覧の合計数",
		}),
		storiesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leviproof_stories_served_total",
			Help: "応答に含めたストーリーの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.targetsRegistered,
		c.dossierViews,
		c.storiesServed,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordTargetRegistered は新規ターゲット登録を記録する。
func (c *Collector) RecordTargetRegistered() {
	c.targetsRegistered.Inc()
}

// RecordDossierViewed はdossier閲覧を記録する。
func (c *Collector) RecordDossierViewed() {
	c.dossierViews.Inc()
}

// RecordStoriesServed は応答に含めたストーリー数を記録する。
func (c *Collector) RecordStoriesServed(count int) {
	c.storiesServed.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// 公開サーフェスを2エンドポイントとページのみに保つため、別ポートで提供する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
