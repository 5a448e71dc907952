package config

const defaultHTTPAddr = ":8080"

type HTTPConfig struct {
	ListenAddr     string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed-origins"`
}

func (s *HTTPConfig) setDefaults() {
	if s.ListenAddr == "" {
		s.ListenAddr = defaultHTTPAddr
	}
	if len(s.AllowedOrigins) == 0 {
		s.AllowedOrigins = []string{"*"}
	}
}

func (s *HTTPConfig) Addr() string {
	return s.ListenAddr
}

func (s *HTTPConfig) Origins() []string {
	return s.AllowedOrigins
}
