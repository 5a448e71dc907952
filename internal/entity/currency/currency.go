package currency

import (
	"sort"
	"strings"
)

const (
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	RUB = "RUB"
	CNY = "CNY"
)

// Table maps currency codes onto conversion factors relative to the base
// currency of the rates provider.
type Table map[string]float64

// Factor returns the rate for code, or 1 when the table has none.
func (t Table) Factor(code string) float64 {
	rate, ok := t[code]
	if !ok || rate == 0 {
		return 1
	}
	return rate
}

func (t Table) Codes() []string {
	res := make([]string, 0, len(t))
	for code := range t {
		res = append(res, code)
	}
	sort.Strings(res)
	return res
}

func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
