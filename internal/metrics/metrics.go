package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	ChatMessages      *prometheus.CounterVec
	AIRequests        *prometheus.CounterVec
	AILatency         *prometheus.HistogramVec
	WebhookDeliveries *prometheus.CounterVec
	ProductSyncs      prometheus.Counter
	Errors            *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			ChatMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_messages_total",
				Help:      "Total chat messages stored by role.",
			}, []string{"role"}),
			AIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ai_requests_total",
				Help:      "Total AI completion requests by outcome.",
			}, []string{"status"}),
			AILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ai_request_duration_seconds",
				Help:      "Latency distribution for AI completion calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"status"}),
			WebhookDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_deliveries_total",
				Help:      "Total webhook delivery attempts by event and outcome.",
			}, []string{"event", "outcome"}),
			ProductSyncs: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "product_syncs_total",
				Help:      "Total product catalog synchronizations.",
			}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total errors grouped by component.",
			}, []string{"component"}),
		}

		prometheus.MustRegister(
			metricsInstance.ChatMessages,
			metricsInstance.AIRequests,
			metricsInstance.AILatency,
			metricsInstance.WebhookDeliveries,
			metricsInstance.ProductSyncs,
			metricsInstance.Errors,
		)
	})
	return metricsInstance
}
