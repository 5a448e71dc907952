package reports

import (
	"strings"

	"github.com/shopspring/decimal"

	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/settings"
)

const displayPlaces = 2

var hundred = decimal.NewFromInt(100)

type CategoryRecord struct {
	Category string
	Amount   decimal.Decimal
	// Share is the percentage of the total, zero when nothing was spent.
	Share decimal.Decimal
}

// Report is everything a view needs, recomputed from scratch on each call.
type Report struct {
	Currency        string
	Total           decimal.Decimal
	ConvertedTotal  decimal.Decimal
	Income          decimal.Decimal
	Balance         decimal.Decimal
	Budget          decimal.Decimal
	BudgetRemaining decimal.Decimal
	BudgetProgress  float64
	OverBudget      bool
	Records         []CategoryRecord
}

func Generate(exps []expense.Record, s settings.Settings, rates currency.Table) Report {
	total := Total(exps)
	budget := parseOrZero(s.Budget)

	records := PerCategory(exps)
	for i := range records {
		if total.IsPositive() {
			records[i].Share = records[i].Amount.Mul(hundred).Div(total).Round(1)
		}
	}

	return Report{
		Currency:        s.Currency,
		Total:           total,
		ConvertedTotal:  ConvertedTotal(exps, rates, s.Currency),
		Income:          parseOrZero(s.Income),
		Balance:         Balance(s.Income, exps),
		Budget:          budget,
		BudgetRemaining: BudgetRemaining(s.Budget, exps),
		BudgetProgress:  BudgetProgress(s.Budget, exps),
		OverBudget:      budget.IsPositive() && total.GreaterThan(budget),
		Records:         records,
	}
}

func Total(exps []expense.Record) decimal.Decimal {
	total := decimal.Zero
	for _, exp := range exps {
		total = total.Add(exp.Amount)
	}
	return total
}

// Balance is income minus total; text that is not a number counts as zero.
func Balance(income string, exps []expense.Record) decimal.Decimal {
	return parseOrZero(income).Sub(Total(exps))
}

// BudgetRemaining is budget minus total; text that is not a number counts as
// zero.
func BudgetRemaining(budget string, exps []expense.Record) decimal.Decimal {
	return parseOrZero(budget).Sub(Total(exps))
}

// BudgetProgress is the spent fraction of the budget clamped to [0, 1].
func BudgetProgress(budget string, exps []expense.Record) float64 {
	limit := parseOrZero(budget)
	if !limit.IsPositive() {
		return 0
	}
	progress, _ := Total(exps).Div(limit).Float64()
	if progress > 1 {
		return 1
	}
	if progress < 0 {
		return 0
	}
	return progress
}

// PerCategory has one record per known category in display order.
func PerCategory(exps []expense.Record) []CategoryRecord {
	m := make(map[string]decimal.Decimal, len(expense.Categories))
	for _, exp := range exps {
		m[exp.Category] = m[exp.Category].Add(exp.Amount)
	}

	records := make([]CategoryRecord, 0, len(expense.Categories))
	for _, cat := range expense.Categories {
		records = append(records, CategoryRecord{Category: cat, Amount: m[cat]})
	}
	return records
}

// ConvertedTotal multiplies the total by the rate of code, rounded for display.
func ConvertedTotal(exps []expense.Record, rates currency.Table, code string) decimal.Decimal {
	factor := decimal.NewFromFloat(rates.Factor(code))
	return Total(exps).Mul(factor).Round(displayPlaces)
}

func parseOrZero(text string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero
	}
	return v
}
