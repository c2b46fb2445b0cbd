package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the persistence context: one handle over the categories and items
// tables. Every write commits on return; writes spanning several rows run in a
// single transaction.
type Store struct {
	Categories *CategoryStore
	Items      *ItemStore
}

// New wraps an already migrated database handle. The caller keeps ownership
// of sqlDB and closes it.
func New(sqlDB *sql.DB, log *slog.Logger) (*Store, error) {
	gdb, err := gorm.Open(sqlite.New(sqlite.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return &Store{
		Categories: NewCategoryStore(gdb),
		Items:      NewItemStore(gdb),
	}, nil
}
