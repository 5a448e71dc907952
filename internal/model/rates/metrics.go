package rates

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pullsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "expense_tracker",
			Subsystem: "rates",
			Name:      "pulls_total",
		},
		[]string{"result"},
	)

	tableSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "expense_tracker",
			Subsystem: "rates",
			Name:      "table_size",
		},
	)
)
