package store

import (
	"errors"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"apimon/internal/config"
)

// ErrNotFound is returned when a lookup matches no record, so callers
// don't have to depend on the driver's sentinel.
var ErrNotFound = errors.New("record not found")

// Store wraps the single process-wide database handle. It is constructed
// once at startup and injected into the HTTP handlers.
type Store struct {
	db *gorm.DB
}

// Connect opens a GORM database connection using APP_DATABASE_URL
// (PostgreSQL URL) and migrates the three tables.
func Connect(cfg *config.Config) (*Store, error) {
	dsn := strings.TrimSpace(cfg.DatabaseURL)
	if dsn == "" {
		return nil, errors.New("APP_DATABASE_URL is required (PostgreSQL URL)")
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil, errors.New("APP_DATABASE_URL must be a postgres:// or postgresql:// URL")
	}

	// PrepareStmt: true prevents the GORM postgres migrator from forcing simple protocol
	// for "SELECT * FROM table LIMIT 1", which would otherwise trigger "insufficient arguments".
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{PrepareStmt: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Project{}, &APIKey{}, &Event{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Tables lists the table names currently present in the database,
// for the connectivity probe.
func (s *Store) Tables() ([]string, error) {
	return s.db.Migrator().GetTables()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
