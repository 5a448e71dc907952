package tracker

import "time"

type EventKind string

const (
	ExpenseAdded    EventKind = "expense_added"
	ExpenseDeleted  EventKind = "expense_deleted"
	BudgetSet       EventKind = "budget_set"
	IncomeSet       EventKind = "income_set"
	CurrencySet     EventKind = "currency_set"
	DarkModeToggled EventKind = "dark_mode_toggled"
	Cleared         EventKind = "cleared"
)

// Event describes one applied mutation.
type Event struct {
	Kind      EventKind `json:"kind"`
	ExpenseID string    `json:"expenseId,omitempty"`
	Value     string    `json:"value,omitempty"`
	At        time.Time `json:"at"`
}
