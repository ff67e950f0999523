package handlers

import (
	"bytes"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/valyala/fasthttp"
)

const metricNamespace = "giftmarket"

var (
	apiRequestsTotal      *prometheus.CounterVec
	catalogCacheHitsTotal prometheus.Counter
	catalogCacheMissTotal prometheus.Counter
	purchasesTotal        prometheus.Counter
	purchaseRevenueTotal  prometheus.Counter
)

func InitPrometheusMetrics() {
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests served.",
		},
		[]string{"path", "status"},
	)
	catalogCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "catalog_cache_hits_total",
		Help:      "Catalog snapshot lookups answered from cache.",
	})
	catalogCacheMissTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "catalog_cache_misses_total",
		Help:      "Catalog snapshot lookups that triggered renormalization.",
	})
	purchasesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "purchases_total",
		Help:      "Successfully registered purchases.",
	})
	purchaseRevenueTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "purchase_revenue_total",
		Help:      "Cumulative registered purchase amount.",
	})
	prometheus.MustRegister(
		apiRequestsTotal,
		catalogCacheHitsTotal, catalogCacheMissTotal,
		purchasesTotal, purchaseRevenueTotal,
	)
}

// CountCacheHit and CountCacheMiss are handed to the catalog service as
// observation hooks by the composition root.
func CountCacheHit() {
	if catalogCacheHitsTotal != nil {
		catalogCacheHitsTotal.Inc()
	}
}

func CountCacheMiss() {
	if catalogCacheMissTotal != nil {
		catalogCacheMissTotal.Inc()
	}
}

// MetricsHandler serves the Prometheus registry in text format. With
// ?app=1 only this service's own metric families are emitted, hiding the
// Go runtime and process families.
func MetricsHandler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		metricFamilies, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to gather metrics")
			return
		}

		appOnly := len(ctx.QueryArgs().Peek("app")) > 0
		filtered := make([]*dto.MetricFamily, 0, len(metricFamilies))
		for _, mf := range metricFamilies {
			if appOnly && !strings.HasPrefix(mf.GetName(), metricNamespace+"_") {
				continue
			}
			filtered = append(filtered, mf)
		}

		var buf bytes.Buffer
		encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
		for _, mf := range filtered {
			if err := encoder.Encode(mf); err != nil {
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
				ctx.SetBodyString("failed to encode metrics")
				return
			}
		}

		ctx.SetContentType(string(expfmt.FmtText))
		ctx.Response.Header.Set("Cache-Control", "no-store")
		ctx.SetBody(buf.Bytes())
	}
}
