package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "launchpad"

// Metrics 服务指标，nil 接收者上的方法均为空操作
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	purchases     *prometheus.CounterVec
	raisedTotal   prometheus.Counter
	claims        *prometheus.CounterVec
	releasedTotal prometheus.Counter

	reportRuns  prometheus.Counter
	staleRounds prometheus.Gauge
}

// New 创建独立的指标注册表并注册所有指标
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		purchases: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Total number of purchase attempts by result",
		}, []string{"result"}),
		raisedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "raised_quote_units_total",
			Help:      "Total quote currency raised by accepted purchases",
		}),
		claims: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claims_total",
			Help:      "Total number of vesting claim attempts by result",
		}, []string{"result"}),
		releasedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "released_tokens_total",
			Help:      "Total tokens released by vesting claims",
		}),
		reportRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vesting_report_runs_total",
			Help:      "Total number of completed vesting report runs",
		}),
		staleRounds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stale_active_rounds",
			Help:      "Active rounds whose end time has passed, as of the last report",
		}),
	}
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer 指标采集器，测试用
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveRequest 记录一次 HTTP 请求
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObservePurchase 记录一次购买，amount 仅在成功时计入募资总额
func (m *Metrics) ObservePurchase(err error, amount uint64) {
	if m == nil {
		return
	}
	if err != nil {
		m.purchases.WithLabelValues("rejected").Inc()
		return
	}
	m.purchases.WithLabelValues("accepted").Inc()
	m.raisedTotal.Add(float64(amount))
}

// ObserveClaim 记录一次领取
func (m *Metrics) ObserveClaim(err error, amount uint64) {
	if m == nil {
		return
	}
	if err != nil {
		m.claims.WithLabelValues("rejected").Inc()
		return
	}
	m.claims.WithLabelValues("accepted").Inc()
	m.releasedTotal.Add(float64(amount))
}

// ObserveReport 记录一次归属报表
func (m *Metrics) ObserveReport(staleRounds int) {
	if m == nil {
		return
	}
	m.reportRuns.Inc()
	m.staleRounds.Set(float64(staleRounds))
}
