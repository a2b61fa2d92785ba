package handlers

import (
	"bytes"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/valyala/fasthttp"
)

var (
	eventsIngestedTotal *prometheus.CounterVec
	eventLatencyBuckets *prometheus.HistogramVec
)

func InitPrometheusMetrics() {
	eventsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apimon",
			Name:      "events_ingested_total",
			Help:      "Total number of ingested request-telemetry events.",
		},
		[]string{"project", "method", "status"},
	)
	eventLatencyBuckets = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "apimon",
			Name:      "event_latency_ms",
			Help:      "Histogram of reported request latencies in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"project", "method"},
	)
	prometheus.MustRegister(eventsIngestedTotal, eventLatencyBuckets)
}

func observeEvent(project, method string, status int, latencyMs float64) {
	if eventsIngestedTotal == nil {
		return
	}
	eventsIngestedTotal.WithLabelValues(project, method, strconv.Itoa(status)).Inc()
	eventLatencyBuckets.WithLabelValues(project, method).Observe(latencyMs)
}

// PrometheusMetrics renders the registered metric families in text
// exposition format. An optional "project" query parameter narrows
// project-labelled families to that project's series.
func PrometheusMetrics() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		project := string(ctx.QueryArgs().Peek("project"))

		metricFamilies, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to gather metrics")
			return
		}

		if project != "" {
			metricFamilies = filterByProject(metricFamilies, project)
		}

		var buf bytes.Buffer
		encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
		for _, mf := range metricFamilies {
			if err := encoder.Encode(mf); err != nil {
				errResponse(ctx, fasthttp.StatusInternalServerError, "failed to encode metrics")
				return
			}
		}

		ctx.SetContentType(string(expfmt.FmtText))
		ctx.Response.Header.Set("Cache-Control", "no-store")
		ctx.SetBody(buf.Bytes())
	}
}

// filterByProject keeps families without a project label untouched and
// narrows the rest to series matching the given project.
func filterByProject(families []*dto.MetricFamily, project string) []*dto.MetricFamily {
	filtered := make([]*dto.MetricFamily, 0, len(families))
	for _, mf := range families {
		hasProjectLabel := false
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "project" {
					hasProjectLabel = true
					break
				}
			}
			if hasProjectLabel {
				break
			}
		}
		if !hasProjectLabel {
			filtered = append(filtered, mf)
			continue
		}

		var kept []*dto.Metric
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "project" && l.GetValue() == project {
					kept = append(kept, m)
					break
				}
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered = append(filtered, &dto.MetricFamily{
			Name:   mf.Name,
			Help:   mf.Help,
			Type:   mf.Type,
			Metric: kept,
		})
	}
	return filtered
}
