package config

const defaultServiceName = "expense-tracker"

type TracingConfig struct {
	On      bool   `yaml:"enabled"`
	Service string `yaml:"service-name"`
}

func (s *TracingConfig) setDefaults() {
	if s.Service == "" {
		s.Service = defaultServiceName
	}
}

func (s *TracingConfig) Enabled() bool {
	return s.On
}

func (s *TracingConfig) ServiceName() string {
	return s.Service
}
