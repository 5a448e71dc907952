package config

const (
	defaultBaseCurrency = "USD"
	defaultRatesURL     = "https://api.exchangerate-api.com/v4/latest/USD"
	defaultExportDir    = "."
)

type AppConfig struct {
	BaseCurrencyName    string `yaml:"base-currency"`
	CurrencyName        string `yaml:"currency"`
	LatestRatesURL      string `yaml:"rates-url"`
	RatesRefreshMinutes int64  `yaml:"rates-refresh-minutes"`
	ExportDirectory     string `yaml:"export-dir"`
}

func (s *AppConfig) setDefaults() {
	if s.BaseCurrencyName == "" {
		s.BaseCurrencyName = defaultBaseCurrency
	}
	if s.CurrencyName == "" {
		s.CurrencyName = s.BaseCurrencyName
	}
	if s.LatestRatesURL == "" {
		s.LatestRatesURL = defaultRatesURL
	}
	if s.ExportDirectory == "" {
		s.ExportDirectory = defaultExportDir
	}
}

func (s *AppConfig) BaseCurrency() string {
	return s.BaseCurrencyName
}

// DefaultCurrency is the display currency selected at startup.
func (s *AppConfig) DefaultCurrency() string {
	return s.CurrencyName
}

func (s *AppConfig) RatesURL() string {
	return s.LatestRatesURL
}

// PullingDelayMinutes of zero means the rates are fetched only once.
func (s *AppConfig) PullingDelayMinutes() int64 {
	return s.RatesRefreshMinutes
}

func (s *AppConfig) ExportDir() string {
	return s.ExportDirectory
}
