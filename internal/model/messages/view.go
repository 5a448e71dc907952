package messages

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"

	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/tracker"
)

const progressWidth = 20

// View is what a front-end draws after every intent.
type View struct {
	Month  time.Time
	State  tracker.State
	Report reports.Report
}

type Renderer interface {
	Render(v View) string
}

// Title names the month the tracker is shown for.
func Title(t time.Time) string {
	return "Expense Tracker for " + now.With(t).BeginningOfMonth().Format("January 2006")
}

// ProgressBar draws fraction (0..1) as a fixed width bar.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// Money formats an amount with the currency label and two decimals.
func Money(code string, amount decimal.Decimal) string {
	return code + " " + amount.StringFixed(2)
}

// RawOrZero shows user typed text, or 0 when there is none.
func RawOrZero(text string) string {
	if strings.TrimSpace(text) == "" {
		return "0"
	}
	return text
}

// PlainRenderer draws the view as plain text, suitable for chat messages.
type PlainRenderer struct{}

func (PlainRenderer) Render(v View) string {
	st, rep := v.State, v.Report
	code := st.Settings.Currency

	lines := []string{
		"💰 " + Title(v.Month),
		"",
		fmt.Sprintf("Income: %s %s", code, RawOrZero(st.Settings.Income)),
		fmt.Sprintf("Budget: %s %s", code, RawOrZero(st.Settings.Budget)),
		fmt.Sprintf("Budget progress: %s %.0f%%", ProgressBar(rep.BudgetProgress, progressWidth), rep.BudgetProgress*100),
		"Remaining: " + Money(code, rep.BudgetRemaining),
		"",
	}

	if len(st.Expenses) == 0 {
		lines = append(lines, "No expenses yet")
	} else {
		lines = append(lines, "Expenses:")
		for i, exp := range st.Expenses {
			lines = append(lines, fmt.Sprintf("%d. %s - %s (%s) #%s",
				i+1, exp.Description, Money(code, exp.Amount), exp.Category, exp.ID))
		}
	}

	lines = append(lines,
		"",
		"Total: "+Money(code, rep.ConvertedTotal),
		"Balance: "+Money(code, rep.Balance),
		"",
		"By category:",
	)
	for _, rec := range rep.Records {
		lines = append(lines, fmt.Sprintf("%s: %s (%s%%)", rec.Category, rec.Amount.StringFixed(2), rec.Share.StringFixed(1)))
	}

	if st.Settings.DarkMode {
		lines = append(lines, "", "🌙 Dark Mode")
	} else {
		lines = append(lines, "", "☀️ Light Mode")
	}
	return strings.Join(lines, "\n")
}
