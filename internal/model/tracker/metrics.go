package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opAdd      = "add_expense"
	opDelete   = "delete_expense"
	opBudget   = "set_budget"
	opIncome   = "set_income"
	opCurrency = "set_currency"
	opDarkMode = "toggle_dark_mode"
	opClear    = "clear_all"
)

var mutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "expense_tracker",
		Subsystem: "store",
		Name:      "mutations_total",
	},
	[]string{"operation", "result"},
)

func observeMutation(op string, applied bool, err error) {
	result := "applied"
	switch {
	case err != nil:
		result = "error"
	case !applied:
		result = "ignored"
	}
	mutationsTotal.WithLabelValues(op, result).Inc()
}
