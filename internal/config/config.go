package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileEnvKey  = "CONFIG_FILE"
	defaultConfigFile = "data/config.yaml"
)

type config struct {
	App       AppConfig       `yaml:"app"`
	Storage   StorageConfig   `yaml:"storage"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Memcached MemcachedConfig `yaml:"memcached"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Events    EventsConfig    `yaml:"events"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	AMQP      AMQPConfig      `yaml:"amqp"`
	HTTP      HTTPConfig      `yaml:"http"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

type Service struct {
	config config
}

// New reads the YAML file named by CONFIG_FILE. A .env file in the working
// directory, if any, is loaded first so it can set CONFIG_FILE and LOG_ENV.
func New() (*Service, error) {
	_ = godotenv.Load()

	path := os.Getenv(configFileEnvKey)
	if path == "" {
		path = defaultConfigFile
	}
	return FromFile(path)
}

func FromFile(path string) (*Service, error) {
	rawYAML, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	return Parse(rawYAML)
}

func Parse(rawYAML []byte) (*Service, error) {
	s := &Service{}

	err := yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}
	s.setDefaults()

	if err = s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) setDefaults() {
	s.config.App.setDefaults()
	s.config.Storage.setDefaults()
	s.config.Postgres.setDefaults()
	s.config.Events.setDefaults()
	s.config.Kafka.setDefaults()
	s.config.AMQP.setDefaults()
	s.config.HTTP.setDefaults()
	s.config.Tracing.setDefaults()
}

// Validate checks that the selected backends are known and fully configured.
func (s *Service) Validate() error {
	var problems []string

	switch s.config.Storage.Backend() {
	case StorageMemory:
	case StorageSQLite:
		if s.config.Storage.SQLitePath() == "" {
			problems = append(problems, "storage.sqlite-path is required for sqlite backend")
		}
	case StoragePostgres:
		if s.config.Postgres.Host() == "" || s.config.Postgres.Database() == "" {
			problems = append(problems, "postgres.host and postgres.db are required for postgres backend")
		}
	case StorageMemcached:
		if len(s.config.Memcached.Hosts()) == 0 {
			problems = append(problems, "memcached.hosts is required for memcached backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown storage backend %q", s.config.Storage.Backend()))
	}

	switch s.config.Events.Backend() {
	case EventsNone:
	case EventsKafka:
		if len(s.config.Kafka.Brokers()) == 0 {
			problems = append(problems, "kafka.brokers is required for kafka events")
		}
	case EventsAMQP:
		if s.config.AMQP.URL() == "" {
			problems = append(problems, "amqp.url is required for amqp events")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown events backend %q", s.config.Events.Backend()))
	}

	if s.config.App.RatesRefreshMinutes < 0 {
		problems = append(problems, "app.rates-refresh-minutes must not be negative")
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Storage() *StorageConfig {
	return &s.config.Storage
}

func (s *Service) Postgres() *PostgresConfig {
	return &s.config.Postgres
}

func (s *Service) Memcached() *MemcachedConfig {
	return &s.config.Memcached
}

func (s *Service) Telegram() *TelegramConfig {
	return &s.config.Telegram
}

func (s *Service) Events() *EventsConfig {
	return &s.config.Events
}

func (s *Service) Kafka() *KafkaConfig {
	return &s.config.Kafka
}

func (s *Service) AMQP() *AMQPConfig {
	return &s.config.AMQP
}

func (s *Service) HTTP() *HTTPConfig {
	return &s.config.HTTP
}

func (s *Service) Tracing() *TracingConfig {
	return &s.config.Tracing
}
