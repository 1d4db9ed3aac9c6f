// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやワーカーから利用する。
type MetricsCollector interface {
	RecordContentWrite(entity string, op string)
	RecordLogin(success bool)
	RecordLinkCheck(ok bool)
	RecordLinkCheckLatency(duration time.Duration)
	RecordSessionsCleaned(count int)
	RecordAnnouncementsArchived(count int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	contentWrites         *prometheus.CounterVec
	loginOutcome          *prometheus.CounterVec
	linkCheckOutcome      *prometheus.CounterVec
	linkCheckLatency      prometheus.Histogram
	sessionsCleaned       prometheus.Counter
	announcementsArchived prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		contentWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sanggunian_content_writes_total",
			Help: "エンティティ・操作別のコンテンツ書き込み数",
		}, []string{"entity", "op"}),
		loginOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sanggunian_login_total",
			Help: "成否別のログイン試行数",
		}, []string{"outcome"}),
		linkCheckOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sanggunian_linkcheck_total",
			Help: "結果別のリンクチェック数",
		}, []string{"outcome"}),
		linkCheckLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sanggunian_linkcheck_latency_seconds",
			Help:    "リンクチェックのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		sessionsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sanggunian_sessions_cleaned_total",
			Help: "クリーンアップで削除された期限切れセッションの合計数",
		}),
		announcementsArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sanggunian_announcements_archived_total",
			Help: "有効期限切れで自動アーカイブされたお知らせの合計数",
		}),
	}

	reg.MustRegister(
		c.contentWrites,
		c.loginOutcome,
		c.linkCheckOutcome,
		c.linkCheckLatency,
		c.sessionsCleaned,
		c.announcementsArchived,
	)

	return c
}

// RecordContentWrite はコンテンツ書き込み（create/update/delete）を記録する。
func (c *Collector) RecordContentWrite(entity string, op string) {
	c.contentWrites.WithLabelValues(entity, op).Inc()
}

// RecordLogin はログイン試行の成否を記録する。
func (c *Collector) RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	c.loginOutcome.WithLabelValues(outcome).Inc()
}

// RecordLinkCheck はリンクチェックの結果を記録する。
func (c *Collector) RecordLinkCheck(ok bool) {
	outcome := "broken"
	if ok {
		outcome = "ok"
	}
	c.linkCheckOutcome.WithLabelValues(outcome).Inc()
}

// RecordLinkCheckLatency はリンクチェックのレイテンシを記録する。
func (c *Collector) RecordLinkCheckLatency(duration time.Duration) {
	c.linkCheckLatency.Observe(duration.Seconds())
}

// RecordSessionsCleaned は削除された期限切れセッション数を記録する。
func (c *Collector) RecordSessionsCleaned(count int) {
	c.sessionsCleaned.Add(float64(count))
}

// RecordAnnouncementsArchived は自動アーカイブされたお知らせ数を記録する。
func (c *Collector) RecordAnnouncementsArchived(count int) {
	c.announcementsArchived.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
