package config

const (
	StorageMemory    = "memory"
	StorageSQLite    = "sqlite"
	StoragePostgres  = "postgres"
	StorageMemcached = "memcached"

	defaultSQLitePath = "data/tracker.db"
)

type StorageConfig struct {
	BackendName string `yaml:"backend"`
	SQLiteFile  string `yaml:"sqlite-path"`
}

func (s *StorageConfig) setDefaults() {
	if s.BackendName == "" {
		s.BackendName = StorageSQLite
	}
	if s.SQLiteFile == "" {
		s.SQLiteFile = defaultSQLitePath
	}
}

func (s *StorageConfig) Backend() string {
	return s.BackendName
}

func (s *StorageConfig) SQLitePath() string {
	return s.SQLiteFile
}
