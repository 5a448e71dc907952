package httpapi

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/tracker"
)

// text accepts both a JSON string and a JSON number, so form values and
// numeric fields reach the store the same way.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = text(n.String())
	return nil
}

type addExpenseRequest struct {
	Description text `json:"description"`
	Amount      text `json:"amount"`
	Category    text `json:"category"`
}

type valueRequest struct {
	Value text `json:"value"`
}

type currencyRequest struct {
	Code string `json:"code"`
}

type categoryResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Share    decimal.Decimal `json:"share"`
}

type summaryResponse struct {
	Total           decimal.Decimal    `json:"total"`
	ConvertedTotal  decimal.Decimal    `json:"convertedTotal"`
	Income          decimal.Decimal    `json:"income"`
	Balance         decimal.Decimal    `json:"balance"`
	Budget          decimal.Decimal    `json:"budget"`
	BudgetRemaining decimal.Decimal    `json:"budgetRemaining"`
	BudgetProgress  float64            `json:"budgetProgress"`
	OverBudget      bool               `json:"overBudget"`
	Categories      []categoryResponse `json:"categories"`
}

type stateResponse struct {
	Title    string           `json:"title"`
	Expenses []expense.Record `json:"expenses"`
	Budget   string           `json:"budget"`
	Income   string           `json:"income"`
	Currency string           `json:"currency"`
	DarkMode bool             `json:"darkMode"`
	Summary  summaryResponse  `json:"summary"`
}

type ratesResponse struct {
	Codes []string           `json:"codes"`
	Rates map[string]float64 `json:"rates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newStateResponse(title string, state tracker.State, r reports.Report) stateResponse {
	categories := make([]categoryResponse, 0, len(r.Records))
	for _, rec := range r.Records {
		categories = append(categories, categoryResponse{
			Category: rec.Category,
			Amount:   rec.Amount,
			Share:    rec.Share,
		})
	}

	return stateResponse{
		Title:    title,
		Expenses: state.Expenses,
		Budget:   state.Settings.Budget,
		Income:   state.Settings.Income,
		Currency: state.Settings.Currency,
		DarkMode: state.Settings.DarkMode,
		Summary: summaryResponse{
			Total:           r.Total,
			ConvertedTotal:  r.ConvertedTotal,
			Income:          r.Income,
			Balance:         r.Balance,
			Budget:          r.Budget,
			BudgetRemaining: r.BudgetRemaining,
			BudgetProgress:  r.BudgetProgress,
			OverBudget:      r.OverBudget,
			Categories:      categories,
		},
	}
}
