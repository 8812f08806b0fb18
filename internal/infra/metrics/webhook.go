package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(webhookVerificationsTotal) }

var webhookVerificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webhook_verifications_total",
		Help: "Webhook signature verifications per outcome (valid/invalid/malformed).",
	},
	[]string{"outcome"},
)

func IncWebhookVerification(outcome string) {
	webhookVerificationsTotal.WithLabelValues(norm(outcome)).Inc()
}
