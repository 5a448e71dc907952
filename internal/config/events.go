package config

const (
	EventsNone  = "none"
	EventsKafka = "kafka"
	EventsAMQP  = "amqp"
)

type EventsConfig struct {
	BackendName string `yaml:"backend"`
}

func (s *EventsConfig) setDefaults() {
	if s.BackendName == "" {
		s.BackendName = EventsNone
	}
}

func (s *EventsConfig) Backend() string {
	return s.BackendName
}
