package expense

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Food          = "Food"
	Transport     = "Transport"
	Entertainment = "Entertainment"
	Bills         = "Bills"
	Other         = "Other"
)

// Categories is the closed set of categories in display order.
var Categories = []string{Food, Transport, Entertainment, Bills, Other}

func init() {
	// amounts are persisted as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Record struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// NormalizeCategory maps name onto its canonical spelling, ignoring case and
// surrounding spaces.
func NormalizeCategory(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, cat := range Categories {
		if strings.EqualFold(cat, name) {
			return cat, true
		}
	}
	return "", false
}

// ParseAmount accepts only positive decimals.
func ParseAmount(text string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}
