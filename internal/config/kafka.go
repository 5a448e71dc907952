package config

const defaultEventsTopic = "expense-tracker-events"

type KafkaConfig struct {
	BrokerList []string `yaml:"brokers"`
	Topic      string   `yaml:"events-topic"`
}

func (s *KafkaConfig) setDefaults() {
	if s.Topic == "" {
		s.Topic = defaultEventsTopic
	}
}

func (s *KafkaConfig) Brokers() []string {
	return s.BrokerList
}

func (s *KafkaConfig) EventsTopic() string {
	return s.Topic
}
