package storage

import (
	"errors"
	"fmt"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/migration"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/database"

	"gorm.io/gorm"
)

// ErrNotInitialized is returned by any storage-backed operation invoked
// before Open succeeded. It is detected synchronously, without touching the
// database.
var ErrNotInitialized = errors.New("storage is not initialized, call Open first")

// Storage is the explicit handle behind every persistence call. It replaces a
// nullable process-wide client: services hold a *Storage and Guard makes the
// initialized/uninitialized state an explicit error.
type Storage struct {
	db         *gorm.DB
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

// Open connects, merges extra migration procedures over the baseline
// registry, and brings the schema to the highest contiguous version. A
// migration failure aborts Open; callers are expected to halt startup.
func Open(cfg config.DatabaseConfig, extra map[int]migration.Procedure, log logger.ILogger) (*Storage, error) {
	db, err := database.NewGormDBFromDSN(cfg.Connection)
	if err != nil {
		return nil, err
	}

	runner := migration.NewRunner()
	for from, proc := range extra {
		runner.Register(from, proc)
	}

	before, err := migration.CurrentVersion(db)
	if err != nil {
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	if err := runner.Run(db); err != nil {
		return nil, err
	}
	after, err := migration.CurrentVersion(db)
	if err != nil {
		return nil, fmt.Errorf("read schema version: %w", err)
	}

	log.Info("storage", "database initialized", map[string]interface{}{
		"schema_version_before": before,
		"schema_version_after":  after,
	})

	return &Storage{
		db:         db,
		uowFactory: unitofwork.NewRepositoryFactory(db),
		log:        log,
	}, nil
}

func (s *Storage) Guard() error {
	if s == nil || s.db == nil {
		return ErrNotInitialized
	}
	return nil
}

func (s *Storage) Factory() unitofwork.RepositoryFactory {
	return s.uowFactory
}

// DB exposes the underlying handle for callers that need it (migration CLI,
// integration tests).
func (s *Storage) DB() *gorm.DB {
	return s.db
}

// Close releases the shared connection pool. Safe to call on a Storage that
// was never opened.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
