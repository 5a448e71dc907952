package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	// sqlite driver
	_ "modernc.org/sqlite"

	"max.ks1230/expense-tracker/internal/logger"
)

const (
	postgresDriver = "postgres"
	sqliteDriver   = "sqlite"

	dsnTemplate = "user=%s password=%s host=%s port=%d dbname=%s sslmode=%s"
	kvTable     = "kv_store"
)

type postgresConfig interface {
	Host() string
	Port() int
	Username() string
	Password() string
	Database() string
	SSLMode() string
}

// SQLStorage keeps every key as one row of kv_store.
type SQLStorage struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

func NewPostgresStorage(config postgresConfig) (*SQLStorage, error) {
	dsn := fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Port(),
		config.Database(),
		config.SSLMode())
	db, err := sql.Open(postgresDriver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return newSQLStorage(db, postgresDriver, dsn, sq.Dollar)
}

func NewSQLiteStorage(path string) (*SQLStorage, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create sqlite directory")
		}
	}

	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open sqlite database")
	}
	// a single connection serializes writers
	db.SetMaxOpenConns(1)
	return newSQLStorage(db, sqliteDriver, path, sq.Question)
}

func newSQLStorage(db *sql.DB, driverName, dsn string, placeholder sq.PlaceholderFormat) (*SQLStorage, error) {
	if err := runMigrations(driverName, dsn); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("sql storage ready", zap.String("driver", driverName))
	return &SQLStorage{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

func (s *SQLStorage) Load(ctx context.Context, key string) (string, bool, error) {
	query := s.builder.Select("value").
		From(kvTable).
		Where(sq.Eq{"name": key})

	var value string
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "load "+key)
	}
	return value, true, nil
}

func (s *SQLStorage) Save(ctx context.Context, key, value string) error {
	updated := time.Now().UTC()
	query := s.builder.Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(key, value, updated).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at")

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "save "+key)
}

func (s *SQLStorage) Remove(ctx context.Context, key string) error {
	query := s.builder.Delete(kvTable).
		Where(sq.Eq{"name": key})

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "remove "+key)
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}
