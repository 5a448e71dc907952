package messages

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var commandDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "expense_tracker",
		Subsystem: "commands",
		Name:      "duration_seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"command", "error"},
)

// commandLabel keeps the label set bounded to the known commands.
func commandLabel(text string) string {
	cmd, _ := parseCommand(text)
	cmd = strings.ToLower(cmd)
	switch {
	case cmd == "":
		return listCommand
	case knownCommands[cmd]:
		return cmd
	}
	return "unknown"
}

var knownCommands = map[string]bool{
	startCommand: true, helpCommand: true, addCommand: true, deleteCommand: true,
	budgetCommand: true, incomeCommand: true, currencyCommand: true,
	currenciesCommand: true, darkModeCommand: true, clearCommand: true,
	exportCommand: true, listCommand: true,
}

func observeCommand(text string, elapsed time.Duration, failed bool) {
	commandDuration.
		WithLabelValues(commandLabel(text), strconv.FormatBool(failed)).
		Observe(elapsed.Seconds())
}
