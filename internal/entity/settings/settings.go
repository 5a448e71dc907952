package settings

// Settings holds the user-editable scalars. Budget and income keep the raw
// text the user typed; parsing happens when reports are built.
type Settings struct {
	Budget   string `json:"budget"`
	Income   string `json:"income"`
	Currency string `json:"currency"`
	DarkMode bool   `json:"darkMode"`
}

func (s *Settings) CurrencyOrDefault(def string) string {
	if s.Currency != "" {
		return s.Currency
	}
	return def
}
