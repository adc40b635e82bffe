package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/moodtunes/moodtunes-backend/internal/platform/envutil"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

// SQLiteService is the local-development storage backend. It migrates the
// same gorm models as postgres; row locking degrades to sqlite's single
// writer, which is fine for one process.
type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(baseLog *logger.Logger) (*SQLiteService, error) {
	serviceLog := baseLog.With("service", "SQLiteService")

	path := envutil.String("SQLITE_PATH", "moodtunes.db")

	gdb, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite at %s: %w", path, err)
	}

	// Serialize writers through one connection; sqlite has no row locks.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &SQLiteService{db: gdb, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func (s *SQLiteService) Migrate() error {
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Dialogue schema migration failed", "error", err)
		return err
	}
	if err := EnsureDialogueIndexes(s.db); err != nil {
		s.log.Error("Dialogue index migration failed", "error", err)
		return err
	}
	return nil
}

func (s *SQLiteService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
