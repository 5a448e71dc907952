package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/messages"
)

const (
	progressWidth = 24
	chartWidth    = 30
)

var categoryColors = map[string]lipgloss.Color{
	expense.Food:          "#4CAF50",
	expense.Transport:     "#FFC107",
	expense.Entertainment: "#03A9F4",
	expense.Bills:         "#E91E63",
	expense.Other:         "#9C27B0",
}

type theme struct {
	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	money  lipgloss.Style
	danger lipgloss.Style
}

var (
	lightTheme = theme{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e1e2e")),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4c4f69")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8c8fa1")),
		money:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#40a02b")),
		danger: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d20f39")),
	}
	darkTheme = theme{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4")),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		money:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a6e3a1")),
		danger: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f38ba8")),
	}
)

// Renderer draws the tracker for a terminal; dark mode picks the palette.
type Renderer struct{}

func (Renderer) Render(v messages.View) string {
	st, rep := v.State, v.Report
	th := lightTheme
	if st.Settings.DarkMode {
		th = darkTheme
	}
	code := st.Settings.Currency

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(th.title.Render("💰 " + messages.Title(v.Month)))
	line("")
	line(th.label.Render("Income: ") + code + " " + messages.RawOrZero(st.Settings.Income))
	line(th.label.Render("Budget: ") + code + " " + messages.RawOrZero(st.Settings.Budget))

	bar := messages.ProgressBar(rep.BudgetProgress, progressWidth)
	if rep.OverBudget {
		bar = th.danger.Render(bar)
	}
	line(th.label.Render("Progress: ") + bar + fmt.Sprintf(" %.0f%%", rep.BudgetProgress*100))

	remaining := messages.Money(code, rep.BudgetRemaining)
	if rep.BudgetRemaining.IsNegative() {
		remaining = th.danger.Render(remaining)
	}
	line(th.label.Render("Remaining: ") + remaining)
	line("")

	if len(st.Expenses) == 0 {
		line(th.muted.Render("No expenses yet. Try /add Food 3.50 Coffee"))
	}
	for i, exp := range st.Expenses {
		cat := lipgloss.NewStyle().Foreground(categoryColors[exp.Category]).Render(exp.Category)
		line(fmt.Sprintf("%2d. %s - %s (%s) %s", i+1, exp.Description,
			messages.Money(code, exp.Amount), cat, th.muted.Render(exp.ID)))
	}
	line("")
	line(th.label.Render("Total: ") + th.money.Render(messages.Money(code, rep.ConvertedTotal)))
	line(th.label.Render("💰 Balance: ") + th.money.Render(messages.Money(code, rep.Balance)))
	line("")

	for _, rec := range rep.Records {
		line(chartRow(rec.Category, rec.Amount, rec.Share))
	}

	mode := "☀️ Light Mode"
	if st.Settings.DarkMode {
		mode = "🌙 Dark Mode"
	}
	b.WriteString(th.muted.Render(mode))
	return b.String()
}

func chartRow(category string, amount, share decimal.Decimal) string {
	width := int(share.Mul(decimal.NewFromInt(chartWidth)).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	bar := lipgloss.NewStyle().Foreground(categoryColors[category]).Render(strings.Repeat("█", width))
	return fmt.Sprintf("%-13s %s %s (%s%%)", category, bar, amount.StringFixed(2), share.StringFixed(1))
}
