package metrics

import (
	"net/http"

	"github.com/VictoriaMetrics/metrics"
)

var (
	OrdersCreated = metrics.GetOrCreateCounter(`promotube_orders_total{result="created"}`)
	OrdersPaid    = metrics.GetOrCreateCounter(`promotube_orders_total{result="paid"}`)
	OrdersFailed  = metrics.GetOrCreateCounter(`promotube_orders_total{result="failed"}`)

	SignaturesValid   = metrics.GetOrCreateCounter(`promotube_signature_checks_total{result="valid"}`)
	SignaturesInvalid = metrics.GetOrCreateCounter(`promotube_signature_checks_total{result="invalid"}`)

	WebhooksProcessed = metrics.GetOrCreateCounter(`promotube_webhooks_total{result="processed"}`)
	WebhooksDuplicate = metrics.GetOrCreateCounter(`promotube_webhooks_total{result="duplicate"}`)
	WebhooksInvalid   = metrics.GetOrCreateCounter(`promotube_webhooks_total{result="invalid_signature"}`)
	WebhooksFailed    = metrics.GetOrCreateCounter(`promotube_webhooks_total{result="process_error"}`)

	RefundsCreated = metrics.GetOrCreateCounter(`promotube_refunds_total{result="created"}`)
	RefundsFailed  = metrics.GetOrCreateCounter(`promotube_refunds_total{result="failed"}`)
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
}
