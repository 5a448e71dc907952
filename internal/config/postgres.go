package config

const (
	defaultPostgresPort    = 5432
	defaultPostgresSSLMode = "disable"
)

type PostgresConfig struct {
	HostName string `yaml:"host"`
	PortNum  int    `yaml:"port"`
	DBName   string `yaml:"db"`
	UserName string `yaml:"username"`
	Pass     string `yaml:"password"`
	SSL      string `yaml:"sslmode"`
}

func (s *PostgresConfig) setDefaults() {
	if s.PortNum == 0 {
		s.PortNum = defaultPostgresPort
	}
	if s.SSL == "" {
		s.SSL = defaultPostgresSSLMode
	}
}

func (s *PostgresConfig) Host() string {
	return s.HostName
}

func (s *PostgresConfig) Port() int {
	return s.PortNum
}

func (s *PostgresConfig) Database() string {
	return s.DBName
}

func (s *PostgresConfig) Username() string {
	return s.UserName
}

func (s *PostgresConfig) Password() string {
	return s.Pass
}

func (s *PostgresConfig) SSLMode() string {
	return s.SSL
}
