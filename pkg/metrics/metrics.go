/*
Package metrics 提供基于Prometheus的指标采集。

The interesting metric here is queries-per-request broken down by read
strategy: it turns the v1..v6 trade-off into an observable number instead of
a code comment.
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StrategyQueries 每次订单读取按策略累计的SQL语句数
	StrategyQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: "order_read",
		Name:      "queries_total",
		Help:      "SQL statements executed by order read strategies.",
	}, []string{"strategy"})

	// StrategyRequests 按策略累计的读取请求数
	StrategyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: "order_read",
		Name:      "requests_total",
		Help:      "Order read requests by strategy.",
	}, []string{"strategy"})

	// StrategyDuration 按策略的读取耗时分布
	StrategyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shop",
		Subsystem: "order_read",
		Name:      "duration_seconds",
		Help:      "Order read latency by strategy.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"strategy"})

	// CacheHits 按策略的DTO缓存命中数
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: "order_read",
		Name:      "cache_hits_total",
		Help:      "DTO cache hits by strategy.",
	}, []string{"strategy"})
)

// ObserveStrategy records one strategy invocation.
func ObserveStrategy(strategy string, queries int64, seconds float64) {
	StrategyRequests.WithLabelValues(strategy).Inc()
	StrategyQueries.WithLabelValues(strategy).Add(float64(queries))
	StrategyDuration.WithLabelValues(strategy).Observe(seconds)
}
