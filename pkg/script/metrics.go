package script

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts executed ops. One Metrics can be shared by many
// Runners; it must be registered only once.
type Metrics struct {
	ops     *prometheus.CounterVec
	errs    *prometheus.CounterVec
	listLen *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ops_total",
			Help: "The total number of executed list ops",
		}, []string{"op"}),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "op_errors_total",
			Help: "The total number of failed list ops",
		}, []string{"op"}),
		listLen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "list_len",
			Help: "The length of a named list after the last op",
		}, []string{"list"}),
	}
	if reg != nil {
		for _, c := range [...]prometheus.Collector{m.ops, m.errs, m.listLen} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
