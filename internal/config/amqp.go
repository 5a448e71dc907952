package config

const (
	defaultAMQPExchange = "expense-tracker"
	defaultAMQPQueue    = "tracker_events"
)

type AMQPConfig struct {
	BrokerURL    string `yaml:"url"`
	ExchangeName string `yaml:"exchange"`
	QueueName    string `yaml:"queue"`
}

func (s *AMQPConfig) setDefaults() {
	if s.ExchangeName == "" {
		s.ExchangeName = defaultAMQPExchange
	}
	if s.QueueName == "" {
		s.QueueName = defaultAMQPQueue
	}
}

func (s *AMQPConfig) URL() string {
	return s.BrokerURL
}

func (s *AMQPConfig) Exchange() string {
	return s.ExchangeName
}

func (s *AMQPConfig) Queue() string {
	return s.QueueName
}
