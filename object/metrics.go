package object

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/parc/errors"
)

// metrics holds the runtime's Prometheus collectors, labeled by object kind.
type metrics struct {
	created    *prometheus.CounterVec
	destroyed  *prometheus.CounterVec
	live       *prometheus.GaugeVec
	violations *prometheus.CounterVec
}

func newObjectCounterVec(runtime, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "parc",
			Subsystem:   "object",
			Name:        name,
			Help:        help,
			ConstLabels: prometheus.Labels{"runtime": runtime},
		},
		labels,
	)
}

func newObjectGaugeVec(runtime, name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   "parc",
			Subsystem:   "object",
			Name:        name,
			Help:        help,
			ConstLabels: prometheus.Labels{"runtime": runtime},
		},
		labels,
	)
}

func newMetrics(runtime string) *metrics {
	return &metrics{
		created:    newObjectCounterVec(runtime, "created_total", "Total number of managed objects created", []string{"kind"}),
		destroyed:  newObjectCounterVec(runtime, "destroyed_total", "Total number of managed objects destroyed", []string{"kind"}),
		live:       newObjectGaugeVec(runtime, "live", "Number of managed objects currently alive", []string{"kind"}),
		violations: newObjectCounterVec(runtime, "violations_total", "Total number of contract violations detected", []string{"reason"}),
	}
}

// register adds the collectors to reg. A collector that is already
// registered is adopted so that counts keep accumulating in one place.
func (m *metrics) register(reg prometheus.Registerer) error {
	var err error
	if m.created, err = registerCounterVec(reg, m.created, "created_total"); err != nil {
		return err
	}
	if m.destroyed, err = registerCounterVec(reg, m.destroyed, "destroyed_total"); err != nil {
		return err
	}
	if m.violations, err = registerCounterVec(reg, m.violations, "violations_total"); err != nil {
		return err
	}
	if err := reg.Register(m.live); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return errors.Registration("parc_object_live", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.GaugeVec)
		if !ok {
			return errors.Registration("parc_object_live", err)
		}
		m.live = existing
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, errors.Registration("parc_object_"+name, err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, errors.Registration("parc_object_"+name, err)
		}
		return existing, nil
	}
	return c, nil
}

func (m *metrics) objectCreated(kind string) {
	m.created.WithLabelValues(kind).Inc()
	m.live.WithLabelValues(kind).Inc()
}

func (m *metrics) objectDestroyed(kind string) {
	m.destroyed.WithLabelValues(kind).Inc()
	m.live.WithLabelValues(kind).Dec()
}

func (m *metrics) violation(kind errors.Kind) {
	m.violations.WithLabelValues(string(kind)).Inc()
}
