// Package metrics expone los contadores de facturación en Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/facturas-api/internal/application/billing"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

var _ billing.InvoiceMetrics = (*InvoiceMetrics)(nil)

// InvoiceMetrics contadores del ciclo de facturación. Etiquetas de baja cardinalidad.
type InvoiceMetrics struct {
	built       *prometheus.CounterVec
	buildFailed *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewInvoiceMetrics registra los contadores en registerer (nil = registro por defecto).
func NewInvoiceMetrics(registerer prometheus.Registerer, service string) *InvoiceMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if service == "" {
		service = "facturas-api"
	}
	constLabels := prometheus.Labels{"service": service}

	m := &InvoiceMetrics{
		built: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoices_built_total",
			Help:        "Facturas armadas y persistidas, por origen.",
			ConstLabels: constLabels,
		}, []string{"source"}),
		buildFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoice_build_failures_total",
			Help:        "Armados de factura rechazados, por origen y motivo.",
			ConstLabels: constLabels,
		}, []string{"source", "reason"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoice_status_transitions_total",
			Help:        "Cambios de estado de factura aplicados.",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
	}
	registerer.MustRegister(m.built, m.buildFailed, m.transitions)
	return m
}

func (m *InvoiceMetrics) InvoiceBuilt(source string) {
	m.built.WithLabelValues(source).Inc()
}

func (m *InvoiceMetrics) BuildFailed(source, reason string) {
	m.buildFailed.WithLabelValues(source, reason).Inc()
}

func (m *InvoiceMetrics) StatusChanged(from, to entity.InvoiceStatus) {
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}
