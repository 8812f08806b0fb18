package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		invoicesTotal,
		invoiceAmountTotal,
	)
}

var (
	invoicesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoices_total",
			Help: "Invoice creations per dispatch route (send/execute/embedded) and outcome.",
		},
		[]string{"route", "outcome"},
	)

	invoiceAmountTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_amount_total",
			Help: "Total invoiced amount of successful creations, labeled by display currency.",
		},
		[]string{"currency"},
	)
)

func IncInvoice(route, outcome string) {
	invoicesTotal.WithLabelValues(norm(route), norm(outcome)).Inc()
}

func AddInvoiceAmount(currency string, amount float64) {
	invoiceAmountTotal.WithLabelValues(norm(currency)).Add(amount)
}
